package embed

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Local is a dependency-free embedder: each lowercased token is hashed
// into a bucket of a fixed-size vector, which is then L2-normalized.
// Identical input always yields an identical vector, and texts sharing
// vocabulary score close under cosine similarity. Meant for development
// and tests, not production retrieval quality.
type Local struct {
	dim int
}

func NewLocal(dim int) *Local {
	return &Local{dim: dim}
}

func (l *Local) Dimension() int {
	return l.dim
}

func (l *Local) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, l.dim)

	for _, token := range tokenize(text) {
		h := fnv.New64a()
		h.Write([]byte(token))
		sum := h.Sum64()

		bucket := int(sum % uint64(l.dim))
		// Sign bit decorrelates buckets shared by unrelated tokens.
		if sum&(1<<63) != 0 {
			vec[bucket] -= 1
		} else {
			vec[bucket] += 1
		}
	}

	normalize(vec)
	return vec, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func normalize(vec []float32) {
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return
	}
	inv := 1 / float32(math.Sqrt(norm))
	for i := range vec {
		vec[i] *= inv
	}
}
