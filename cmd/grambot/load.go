package main

import (
	"github.com/spf13/cobra"

	"github.com/anhngx/grambot/internal/service/ingest"
	"github.com/anhngx/grambot/pkg/log"
)

var loadCmd = &cobra.Command{
	Use:   "load [files...]",
	Short: "Load documents into the knowledge base",
	Long:  `Chunks the given text files and stores their embeddings so chat replies can draw on them.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		db, idx, err := newIndex(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		loader := ingest.NewLoader(idx, ingest.DefaultChunkerConfig())

		total := 0
		for _, path := range args {
			n, err := loader.LoadFile(ctx, path)
			if err != nil {
				return err
			}
			logger.Info().Str("file", path).Int("fragments", n).Msg("loaded")
			total += n
		}

		logger.Info().Int("fragments", total).Int("files", len(args)).Msg("knowledge base updated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
