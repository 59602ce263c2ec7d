package config

import (
	"context"

	"github.com/caarlos0/env/v11"

	"github.com/anhngx/grambot/pkg/log"
)

type ProviderConfig struct {
	// Provider selects the generative backend once at startup.
	Provider string `env:"LLM_PROVIDER" envDefault:"openai"`
	Model    string `env:"MODEL_NAME" envDefault:"gpt-4o-mini"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	OllamaBaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey  string `env:"OLLAMA_API_KEY"`

	CustomOpenAIBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Provider config")
	}
	return c
}
