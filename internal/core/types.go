package core

import "time"

const (
	GramBotName    = "GramBot"
	GramBotVersion = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role/content pair in an assembled prompt or a reply.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Turn is one persisted conversational message for a user. Sequence is
// assigned at write time and is strictly increasing per user.
type Turn struct {
	Sequence  int64     `json:"sequence"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Fragment is one embedded unit of text stored for similarity search.
// Fragments are append-only; ID is assigned by the store at insert time.
type Fragment struct {
	ID        int64
	Text      string
	Embedding []float32
}

// Reply is the result of one orchestrated chat exchange: the generated
// text plus the newest turn pair (user message, assistant message).
type Reply struct {
	Text  string    `json:"reply"`
	Turns []Message `json:"history"`
}
