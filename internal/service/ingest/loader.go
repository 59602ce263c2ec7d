package ingest

import (
	"context"
	"fmt"
	"os"

	"github.com/anhngx/grambot/pkg/log"
)

// MemoryIndex is the destination for loaded chunks.
type MemoryIndex interface {
	Insert(ctx context.Context, text string) (int64, error)
}

// Loader reads grammar reference files, chunks them token-aware, and
// inserts every chunk into the semantic index.
type Loader struct {
	index MemoryIndex
	cfg   ChunkerConfig
}

func NewLoader(index MemoryIndex, cfg ChunkerConfig) *Loader {
	return &Loader{index: index, cfg: cfg}
}

// LoadFile ingests one file and returns the number of chunks stored.
func (l *Loader) LoadFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return l.LoadText(ctx, string(data))
}

// LoadText chunks and indexes raw text.
func (l *Loader) LoadText(ctx context.Context, text string) (int, error) {
	logger := log.FromCtx(ctx)

	chunks := ChunkText(text, l.cfg)
	stored := 0
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return stored, err
		}
		id, err := l.index.Insert(ctx, chunk.Text)
		if err != nil {
			return stored, fmt.Errorf("index chunk %d: %w", chunk.Index, err)
		}
		logger.Debug().Int64("fragment_id", id).Int("tokens", chunk.TokenSize).Msg("chunk indexed")
		stored++
	}
	return stored, nil
}
