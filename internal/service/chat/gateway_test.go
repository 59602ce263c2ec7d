package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/anhngx/grambot/internal/core"
)

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Chat(_ context.Context, _ []core.Message) (core.Message, error) {
	s.calls++
	if s.err != nil {
		return core.Message{}, s.err
	}
	return core.Message{Role: core.RoleAssistant, Content: s.reply}, nil
}

func TestGateway_TrimsWhitespace(t *testing.T) {
	g := NewGateway(&stubProvider{reply: "  a gerund is a verbal noun \n"})

	got, err := g.Complete(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a gerund is a verbal noun" {
		t.Errorf("got %q", got)
	}
}

func TestGateway_BackendErrorIsGenerationError(t *testing.T) {
	g := NewGateway(&stubProvider{err: errors.New("quota exceeded")})

	_, err := g.Complete(context.Background(), nil)
	var genErr *core.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Backend != "stub" {
		t.Errorf("backend = %q, want stub", genErr.Backend)
	}
}

func TestGateway_EmptyReplyIsGenerationError(t *testing.T) {
	g := NewGateway(&stubProvider{reply: "   \n\t"})

	_, err := g.Complete(context.Background(), nil)
	var genErr *core.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !errors.Is(err, core.ErrEmptyReply) {
		t.Errorf("expected ErrEmptyReply cause, got %v", genErr.Err)
	}
}
