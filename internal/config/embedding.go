package config

import (
	"context"

	"github.com/caarlos0/env/v11"

	"github.com/anhngx/grambot/pkg/log"
)

type EmbeddingConfig struct {
	// Provider selects the embedding backend: "local" or "openai".
	Provider string `env:"EMBEDDING_PROVIDER" envDefault:"local"`
	Model    string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`

	// Dimension is D: fixed per deployment, shared by every fragment in
	// the index.
	Dimension int `env:"EMBEDDING_DIM" envDefault:"256"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_API_BASE" envDefault:"https://api.openai.com"`
}

func NewEmbeddingConfig(ctx context.Context) *EmbeddingConfig {
	c := &EmbeddingConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Embedding config")
	}
	return c
}
