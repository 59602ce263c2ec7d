// Package index implements the long-term semantic memory: an
// embedding-similarity search over persisted text fragments.
package index

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/anhngx/grambot/internal/core"
	"github.com/anhngx/grambot/pkg/log"
)

// Index pairs an embedding provider with a fragments repository. Queries
// score every stored fragment by cosine similarity over a single-read
// snapshot; the linear scan is the accepted contract at this scale.
type Index struct {
	repo     core.FragmentsRepository
	embedder core.Embedder
	dim      int
}

func New(repo core.FragmentsRepository, embedder core.Embedder) *Index {
	return &Index{
		repo:     repo,
		embedder: embedder,
		dim:      embedder.Dimension(),
	}
}

// Insert embeds text and appends it as a new fragment, returning the
// store-assigned id.
func (i *Index) Insert(ctx context.Context, text string) (int64, error) {
	vec, err := i.embedder.Embed(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("embed fragment: %w", err)
	}
	if len(vec) != i.dim {
		return 0, &core.DimensionError{Want: i.dim, Got: len(vec)}
	}

	id, err := i.repo.Insert(ctx, text, vec)
	if err != nil {
		return 0, fmt.Errorf("store fragment: %w", err)
	}

	log.FromCtx(ctx).Debug().Int64("fragment_id", id).Msg("fragment indexed")
	return id, nil
}

// Query returns the texts of the k fragments most similar to the query,
// highest similarity first. Ties break by insertion order. An empty
// index yields an empty result, never an error.
func (i *Index) Query(ctx context.Context, text string, k int) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}

	count, err := i.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRetrievalUnavailable, err)
	}
	if count == 0 {
		return nil, nil
	}

	queryVec, err := i.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", core.ErrRetrievalUnavailable, err)
	}

	fragments, err := i.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRetrievalUnavailable, err)
	}

	type scored struct {
		text  string
		score float64
	}
	results := make([]scored, 0, len(fragments))
	for _, f := range fragments {
		results = append(results, scored{
			text:  f.Text,
			score: cosine(queryVec, f.Embedding),
		})
	}

	// Fragments arrive in insertion order; a stable sort keeps that
	// order for equal scores.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].score > results[b].score
	})

	if k > len(results) {
		k = len(results)
	}
	texts := make([]string, 0, k)
	for _, r := range results[:k] {
		texts = append(texts, r.text)
	}
	return texts, nil
}

// cosine returns the cosine similarity of two vectors, or 0 when either
// has zero magnitude or the lengths differ.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
