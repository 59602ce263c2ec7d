package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/anhngx/grambot/internal/config"
	"github.com/anhngx/grambot/internal/index"
	"github.com/anhngx/grambot/internal/providers/embed"
	"github.com/anhngx/grambot/internal/providers/llm"
	"github.com/anhngx/grambot/internal/service/chat"
	"github.com/anhngx/grambot/internal/storage/sqlite"
	"github.com/anhngx/grambot/internal/transport/httpapi"
	"github.com/anhngx/grambot/internal/transport/telegram"
	"github.com/anhngx/grambot/pkg/log"
	"github.com/anhngx/grambot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	providerCfg := config.NewProviderConfig(ctx)
	embeddingCfg := config.NewEmbeddingConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	turnsRepo := sqlite.NewTurnsRepo(db)
	fragmentsRepo := sqlite.NewFragmentsRepo(db)

	// 3. AI Provider
	aiProvider, err := llm.NewProvider(ctx, providerCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Embedder + semantic memory
	embedder, err := embed.NewEmbedder(ctx, embeddingCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize embedder")
	}
	memory := index.New(fragmentsRepo, embedder)

	// 5. Chat pipeline
	orch := chat.NewOrchestrator(
		turnsRepo,
		memory,
		chat.NewAssembler(chat.DefaultSystemPrompt, appCfg.ContextWindowSize),
		chat.NewGateway(aiProvider),
		chat.Config{
			HistoryWindow:      appCfg.ContextWindowSize,
			TopK:               appCfg.RetrievalTopK,
			GenerationAttempts: appCfg.GenerationAttempts,
		},
	)

	// 6. Transports
	transports, err := initTransports(ctx, appCfg, orch, turnsRepo)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

// newIndex wires just enough for offline ingestion: storage plus the
// embedder-backed fragment index.
func newIndex(ctx context.Context) (*sql.DB, *index.Index, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, nil, err
	}

	appCfg := config.NewAppConfig(ctx)
	embeddingCfg := config.NewEmbeddingConfig(ctx)

	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		return nil, nil, err
	}

	embedder, err := embed.NewEmbedder(ctx, embeddingCfg)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return db, index.New(sqlite.NewFragmentsRepo(db), embedder), nil
}

func initTransports(ctx context.Context, cfg *config.AppConfig, orch *chat.Orchestrator, turns *sqlite.TurnsRepo) ([]srv.Service, error) {
	var services []srv.Service

	// HTTP API
	serverCfg := config.NewServerConfig(ctx)
	services = append(services, httpapi.NewServer(serverCfg, orch, turns))

	// Telegram Bot
	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, orch, turns)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
