package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/anhngx/grambot/internal/core"
	"github.com/anhngx/grambot/pkg/log"
)

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type historyResponse struct {
	UserID  string         `json:"user_id"`
	History []core.Message `json:"history"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": core.GramBotVersion,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	req.Message = strings.TrimSpace(req.Message)
	if req.UserID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "user_id and message are required")
		return
	}

	reply, err := s.orch.Handle(r.Context(), req.UserID, req.Message)
	if err != nil {
		var genErr *core.GenerationError
		if errors.As(err, &genErr) {
			log.FromCtx(r.Context()).Error().Err(err).
				Str("backend", genErr.Backend).
				Str("user_id", req.UserID).
				Msg("generation failed")
			writeError(w, http.StatusBadGateway, "generation failed")
			return
		}
		log.FromCtx(r.Context()).Error().Err(err).Str("user_id", req.UserID).Msg("chat failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	turns, err := s.turns.Recent(r.Context(), userID, limit)
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Str("user_id", userID).Msg("history read failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	history := make([]core.Message, 0, len(turns))
	for _, t := range turns {
		history = append(history, core.Message{Role: t.Role, Content: t.Content})
	}
	writeJSON(w, http.StatusOK, historyResponse{UserID: userID, History: history})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := s.turns.Clear(r.Context(), userID); err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Str("user_id", userID).Msg("history clear failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
