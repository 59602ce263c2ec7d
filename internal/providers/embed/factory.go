package embed

import (
	"context"
	"fmt"

	"github.com/anhngx/grambot/internal/config"
	"github.com/anhngx/grambot/internal/core"
	"github.com/anhngx/grambot/pkg/log"
)

// NewEmbedder creates the configured embedding backend.
func NewEmbedder(ctx context.Context, cfg *config.EmbeddingConfig) (core.Embedder, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Int("dim", cfg.Dimension).
		Msg("starting embedding provider")

	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", cfg.Dimension)
	}

	switch cfg.Provider {
	case "local":
		return NewLocal(cfg.Dimension), nil
	case "openai":
		return NewOpenAI(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.Model, cfg.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}
