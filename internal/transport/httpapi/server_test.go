package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anhngx/grambot/internal/config"
	"github.com/anhngx/grambot/internal/core"
)

type fakeOrch struct {
	reply core.Reply
	err   error

	gotUserID    string
	gotUtterance string
}

func (f *fakeOrch) Handle(ctx context.Context, userID, utterance string) (core.Reply, error) {
	f.gotUserID = userID
	f.gotUtterance = utterance
	if f.err != nil {
		return core.Reply{}, f.err
	}
	return f.reply, nil
}

type fakeTurns struct {
	recent    []core.Turn
	recentErr error

	clearedFor string
	clearErr   error
}

func (f *fakeTurns) Append(ctx context.Context, userID, role, content string) error { return nil }

func (f *fakeTurns) Recent(ctx context.Context, userID string, n int) ([]core.Turn, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if n < len(f.recent) {
		return f.recent[len(f.recent)-n:], nil
	}
	return f.recent, nil
}

func (f *fakeTurns) Clear(ctx context.Context, userID string) error {
	f.clearedFor = userID
	return f.clearErr
}

func newTestServer(orch Orchestrator, turns core.TurnsRepository) *Server {
	cfg := &config.ServerConfig{
		Addr:            ":0",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}
	return NewServer(cfg, orch, turns)
}

func TestChatReturnsReply(t *testing.T) {
	orch := &fakeOrch{
		reply: core.Reply{
			Text: "use the past tense here",
			Turns: []core.Message{
				{Role: core.RoleUser, Content: "I goed home"},
				{Role: core.RoleAssistant, Content: "use the past tense here"},
			},
		},
	}
	srv := newTestServer(orch, &fakeTurns{})

	body := `{"user_id":"u1","message":"I goed home"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", orch.gotUserID)
	assert.Equal(t, "I goed home", orch.gotUtterance)

	var got core.Reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "use the past tense here", got.Text)
	require.Len(t, got.Turns, 2)
	assert.Equal(t, core.RoleUser, got.Turns[0].Role)
}

func TestChatValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing message", `{"user_id":"u1"}`},
		{"blank message", `{"user_id":"u1","message":"   "}`},
		{"missing user", `{"message":"hello"}`},
		{"malformed json", `{"user_id":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch := &fakeOrch{}
			srv := newTestServer(orch, &fakeTurns{})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, orch.gotUserID)
		})
	}
}

func TestChatGenerationFailure(t *testing.T) {
	orch := &fakeOrch{
		err: &core.GenerationError{Backend: "openai", Err: errors.New("rate limited")},
	}
	srv := newTestServer(orch, &fakeTurns{})

	body := `{"user_id":"u1","message":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var got errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "generation failed", got.Error)
}

func TestGetHistory(t *testing.T) {
	turns := &fakeTurns{
		recent: []core.Turn{
			{UserID: "u1", Role: core.RoleUser, Content: "hi"},
			{UserID: "u1", Role: core.RoleAssistant, Content: "hello"},
		},
	}
	srv := newTestServer(&fakeOrch{}, turns)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/u1", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got historyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "u1", got.UserID)
	require.Len(t, got.History, 2)
	assert.Equal(t, "hello", got.History[1].Content)
}

func TestGetHistoryLimit(t *testing.T) {
	turns := &fakeTurns{
		recent: []core.Turn{
			{Role: core.RoleUser, Content: "first"},
			{Role: core.RoleAssistant, Content: "second"},
			{Role: core.RoleUser, Content: "third"},
		},
	}
	srv := newTestServer(&fakeOrch{}, turns)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/u1?limit=1", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got historyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.History, 1)
	assert.Equal(t, "third", got.History[0].Content)
}

func TestGetHistoryBadLimit(t *testing.T) {
	srv := newTestServer(&fakeOrch{}, &fakeTurns{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/u1?limit=zero", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClearHistory(t *testing.T) {
	turns := &fakeTurns{}
	srv := newTestServer(&fakeOrch{}, turns)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/history/u1", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u1", turns.clearedFor)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakeOrch{}, &fakeTurns{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got["status"])
}
