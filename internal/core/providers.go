package core

import "context"

// AIProvider is one generative backend. The variant is selected once at
// startup; callers never branch on it per request.
type AIProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
	Name() string
}

// Embedder maps text to a fixed-length vector. Identical input must
// produce an identical vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
