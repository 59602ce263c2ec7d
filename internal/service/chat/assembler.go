package chat

import (
	"strings"

	"github.com/anhngx/grambot/internal/core"
)

// Assembler builds the bounded prompt sent to the model: one system
// entry, up to maxTurns historical turns oldest first, and the new
// utterance last. It is a pure function of its inputs — no clock, no
// randomness, no I/O.
type Assembler struct {
	systemPrompt string
	maxTurns     int
}

func NewAssembler(systemPrompt string, maxTurns int) *Assembler {
	return &Assembler{
		systemPrompt: systemPrompt,
		maxTurns:     maxTurns,
	}
}

func (a *Assembler) Assemble(fragments []string, turns []core.Turn, utterance string) []core.Message {
	contextText := NoContextPlaceholder
	if len(fragments) > 0 {
		contextText = strings.Join(fragments, "\n")
	}

	messages := make([]core.Message, 0, len(turns)+2)
	messages = append(messages, core.Message{
		Role:    core.RoleSystem,
		Content: a.systemPrompt + "\n\n" + contextHeading + "\n" + contextText,
	})

	// Cap history at maxTurns, dropping the oldest first.
	if a.maxTurns >= 0 && len(turns) > a.maxTurns {
		turns = turns[len(turns)-a.maxTurns:]
	}
	for _, t := range turns {
		messages = append(messages, core.Message{Role: t.Role, Content: t.Content})
	}

	messages = append(messages, core.Message{Role: core.RoleUser, Content: utterance})
	return messages
}
