package ingest

import (
	"strings"
	"testing"
)

func TestChunkText_Empty(t *testing.T) {
	if got := ChunkText("", DefaultChunkerConfig()); got != nil {
		t.Fatalf("expected nil for empty text, got %v", got)
	}
	if got := ChunkText("   \n\n  ", DefaultChunkerConfig()); got != nil {
		t.Fatalf("expected nil for blank text, got %v", got)
	}
}

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	text := "A gerund is a verb form ending in -ing. It works as a noun."

	chunks := ChunkText(text, DefaultChunkerConfig())
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
	if chunks[0].Index != 0 {
		t.Errorf("chunk index = %d", chunks[0].Index)
	}
}

func TestChunkText_RespectsTokenBudget(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString("The past participle of an irregular verb must be memorized separately. ")
	}

	cfg := ChunkerConfig{MaxTokens: 60, OverlapTokens: 10}
	chunks := ChunkText(sb.String(), cfg)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.TokenSize > cfg.MaxTokens {
			t.Errorf("chunk %d has %d tokens, budget %d", i, c.TokenSize, cfg.MaxTokens)
		}
		if c.Index != i {
			t.Errorf("chunk %d carries index %d", i, c.Index)
		}
	}
}

func TestChunkText_OverlapCarriesContext(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("Sentence number provides continuity across boundaries. ")
	}

	cfg := ChunkerConfig{MaxTokens: 50, OverlapTokens: 15}
	chunks := ChunkText(sb.String(), cfg)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// The start of the second chunk repeats material from the first.
	firstWords := strings.Fields(chunks[0].Text)
	tail := strings.Join(firstWords[len(firstWords)-3:], " ")
	if !strings.Contains(chunks[1].Text, tail) {
		t.Errorf("second chunk does not overlap first:\nfirst: %q\nsecond: %q", chunks[0].Text, chunks[1].Text)
	}
}

func TestChunkText_OversizedSentenceIsSliced(t *testing.T) {
	// One long "sentence" without any sentence-ending punctuation.
	long := strings.Repeat("subjunctive ", 300)

	cfg := ChunkerConfig{MaxTokens: 50, OverlapTokens: 5}
	chunks := ChunkText(long, cfg)

	if len(chunks) < 2 {
		t.Fatalf("expected oversized sentence to be sliced, got %d chunks", len(chunks))
	}
	for i, c := range chunks {
		if c.TokenSize > cfg.MaxTokens {
			t.Errorf("chunk %d has %d tokens, budget %d", i, c.TokenSize, cfg.MaxTokens)
		}
	}
}

func TestSplitParagraphs(t *testing.T) {
	text := "First line\nstill first paragraph.\n\nSecond paragraph."
	got := splitParagraphs(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d: %v", len(got), got)
	}
	if got[0] != "First line still first paragraph." {
		t.Errorf("soft wrap not collapsed: %q", got[0])
	}
}
