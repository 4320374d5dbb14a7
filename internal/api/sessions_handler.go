// File path: internal/api/sessions_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/nimbuserp/nimbus-assist/internal/common"
	"github.com/nimbuserp/nimbus-assist/internal/session"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	if s.sessions == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("session persistence disabled"))
		return
	}
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("user_id required"))
		return
	}
	sess, err := s.sessions.CreateSession(r.Context(), req.UserID, req.Title)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: session created", "session", sess.ID, "user", sess.UserID)
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("session persistence disabled"))
		return
	}
	userID := r.URL.Query().Get("user_id")
	if strings.TrimSpace(userID) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing user_id parameter"))
		return
	}
	sessions, err := s.sessions.ListSessions(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

func (s *Server) handleSessionMessages(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("session persistence disabled"))
		return
	}
	id := chi.URLParam(r, "id")
	history, err := s.sessions.History(r.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Errorf("session %s not found", id))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": history})
}

func sessionUserMessage(req chatRequest) session.ChatMessage {
	return session.ChatMessage{
		SessionID: req.SessionID,
		Type:      session.TypeUser,
		Content:   req.Message,
	}
}

func sessionAIMessage(sessionID string, resp chatResponse) session.ChatMessage {
	return session.ChatMessage{
		SessionID:  sessionID,
		Type:       session.TypeAI,
		Content:    resp.Response,
		Source:     resp.Source,
		Confidence: resp.Confidence,
	}
}
