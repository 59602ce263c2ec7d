package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anhngx/grambot/internal/config"
	"github.com/anhngx/grambot/internal/core"
	"github.com/anhngx/grambot/pkg/log"
)

// Orchestrator handles one chat exchange.
type Orchestrator interface {
	Handle(ctx context.Context, userID, utterance string) (core.Reply, error)
}

// Server exposes the chat pipeline over HTTP. Parsing and routing live
// here; all conversation semantics stay in the orchestrator.
type Server struct {
	cfg    *config.ServerConfig
	orch   Orchestrator
	turns  core.TurnsRepository
	server *http.Server
}

func NewServer(cfg *config.ServerConfig, orch Orchestrator, turns core.TurnsRepository) *Server {
	s := &Server{
		cfg:   cfg,
		orch:  orch,
		turns: turns,
	}
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Get("/history/{userID}", s.handleGetHistory)
		r.Delete("/history/{userID}", s.handleClearHistory)
	})

	return r
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.cfg.Addr).Msg("starting http api")

	// Hand the startup context to every request.
	s.server.BaseContext = func(net.Listener) context.Context { return ctx }

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
