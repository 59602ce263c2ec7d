package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/anhngx/grambot/pkg/log"
	"github.com/anhngx/grambot/pkg/srv"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GramBot services",
	Long:  `Initializes the storage, embedder and LLM provider, then starts all configured transports (HTTP API, Telegram).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting grambot")

		services := NewServices(ctx)

		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("grambot has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
