package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/anhngx/grambot/pkg/log"
)

type ServerConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"180s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func NewServerConfig(ctx context.Context) *ServerConfig {
	c := &ServerConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Server config")
	}
	return c
}
