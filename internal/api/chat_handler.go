// File path: internal/api/chat_handler.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nimbuserp/nimbus-assist/internal/common"
	"github.com/nimbuserp/nimbus-assist/internal/common/telemetry"
	"github.com/nimbuserp/nimbus-assist/internal/format"
	"github.com/nimbuserp/nimbus-assist/internal/llm"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: chat decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("message required"))
		return
	}
	roleCfg, ok := format.ParseRole(req.Role)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown role %q", req.Role))
		return
	}
	logger.Info("api: chat request received", "role", roleCfg.ID, "message_length", len(req.Message))

	resp := s.answer(ctx, req.Message, roleCfg)
	s.persistExchange(ctx, req, resp)
	writeJSON(w, http.StatusOK, resp)
}

// answer consults the knowledge base first and falls back to the generation
// provider. Upstream failures resolve to the persona's apology so the
// conversation never ends in an error state.
func (s *Server) answer(ctx context.Context, message string, roleCfg format.RoleConfig) chatResponse {
	logger := common.Logger()
	start := time.Now()
	result := s.searcher.Search(message)
	telemetry.RecordSearch(result.Matched, result.Source, time.Since(start))
	telemetry.RecordChat(!result.Matched)
	if result.Matched {
		logger.Info("api: knowledge base hit", "source", result.Source, "confidence", result.Confidence)
		return chatResponse{
			Response:   format.FormatResponse(result.Response, roleCfg.ID, result.Source),
			Source:     result.Source,
			Confidence: result.Confidence,
			Role:       string(roleCfg.ID),
		}
	}
	logger.Info("api: no knowledge match, falling back to generation")

	provider := s.provider
	if provider == nil {
		provider = llm.NewProvider()
	}
	genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()
	genStart := time.Now()
	answer, err := provider.Chat(genCtx, llm.BuildPrompt(message, roleCfg))
	telemetry.RecordGeneration(time.Since(genStart), err)
	if err != nil {
		logger.Error("api: generation failed", "provider", provider.Name(), "error", err)
		return chatResponse{
			Response:   roleCfg.Apology,
			Source:     sourceSystem,
			Confidence: 0,
			Role:       string(roleCfg.ID),
		}
	}
	return chatResponse{
		Response:   format.FormatResponse(answer, roleCfg.ID, ""),
		Source:     sourceAI,
		Confidence: aiConfidence,
		Role:       string(roleCfg.ID),
	}
}

// persistExchange saves the user message and the assistant reply when a
// session is supplied. Persistence is best effort: failures are logged and
// the response is served regardless.
func (s *Server) persistExchange(ctx context.Context, req chatRequest, resp chatResponse) {
	if s.sessions == nil || strings.TrimSpace(req.SessionID) == "" {
		return
	}
	logger := common.Logger()
	if _, err := s.sessions.AppendMessage(ctx, sessionUserMessage(req)); err != nil {
		logger.Warn("api: failed to persist user message", "session", req.SessionID, "error", err)
		return
	}
	if _, err := s.sessions.AppendMessage(ctx, sessionAIMessage(req.SessionID, resp)); err != nil {
		logger.Warn("api: failed to persist assistant message", "session", req.SessionID, "error", err)
	}
}
