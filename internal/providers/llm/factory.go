package llm

import (
	"context"
	"fmt"

	"github.com/anhngx/grambot/internal/config"
	"github.com/anhngx/grambot/internal/core"
	"github.com/anhngx/grambot/pkg/log"
)

// NewProvider creates the configured AIProvider. The choice is made once
// here; nothing downstream branches on the backend again.
func NewProvider(ctx context.Context, cfg *config.ProviderConfig) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("starting llm provider")

	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.Model), nil
	case "gemini":
		return NewGemini(cfg.GeminiAPIKey, cfg.Model), nil
	case "ollama":
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, cfg.Model), nil
	case "custom":
		return NewCustomOpenAI(cfg.CustomOpenAIBaseURL, cfg.CustomOpenAIAPIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
