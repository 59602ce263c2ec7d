package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/anhngx/grambot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"GRAMBOT_RUNTIME_PATH" envDefault:".grambot"`

	// ContextWindowSize is H: the maximum number of historical turns
	// included in one assembled prompt.
	ContextWindowSize int `env:"CONTEXT_WINDOW_SIZE" envDefault:"10"`

	// RetrievalTopK is the number of semantic fragments retrieved per query.
	RetrievalTopK int `env:"RETRIEVAL_TOP_K" envDefault:"3"`

	// GenerationAttempts is the orchestrator's total generation budget,
	// including the first try. 1 means no retry.
	GenerationAttempts int `env:"GENERATION_ATTEMPTS" envDefault:"1"`

	// Transport flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "grambot.db")
}
