package chat

import (
	"context"
	"strings"

	"github.com/anhngx/grambot/internal/core"
)

// Gateway normalizes the configured backend's output: replies are
// whitespace-trimmed and an empty reply is a generation failure. It
// never retries; retry policy belongs to the orchestrator.
type Gateway struct {
	provider core.AIProvider
}

func NewGateway(provider core.AIProvider) *Gateway {
	return &Gateway{provider: provider}
}

func (g *Gateway) Complete(ctx context.Context, messages []core.Message) (string, error) {
	msg, err := g.provider.Chat(ctx, messages)
	if err != nil {
		return "", &core.GenerationError{Backend: g.provider.Name(), Err: err}
	}

	reply := strings.TrimSpace(msg.Content)
	if reply == "" {
		return "", &core.GenerationError{Backend: g.provider.Name(), Err: core.ErrEmptyReply}
	}
	return reply, nil
}
