// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"expvar"
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/nimbuserp/nimbus-assist/internal/common"
	"github.com/nimbuserp/nimbus-assist/internal/kb"
	"github.com/nimbuserp/nimbus-assist/internal/llm"
	"github.com/nimbuserp/nimbus-assist/internal/session"
)

type Server struct {
	router   chi.Router
	searcher *kb.Searcher
	provider llm.Provider
	sessions *session.Store

	genTimeout time.Duration
}

// Config controls the chat endpoint's generation behaviour.
type Config struct {
	// GenTimeout bounds a single generation call; the apology fallback is
	// served when it expires.
	GenTimeout time.Duration
}

// DefaultConfig returns the standard configuration used when no overrides
// are provided.
func DefaultConfig() Config {
	return Config{GenTimeout: 8 * time.Second}
}

// Merge overlays non-zero fields from the override onto the base
// configuration.
func (c Config) Merge(override Config) Config {
	result := c
	if override.GenTimeout > 0 {
		result.GenTimeout = override.GenTimeout
	}
	return result
}

// NewServer wires the knowledge searcher, generation provider and session
// store behind the HTTP API. The session store may be nil, which disables
// persistence but keeps the assistant functional.
func NewServer(searcher *kb.Searcher, provider llm.Provider, sessions *session.Store, cfg *Config) (*Server, error) {
	logger := common.Logger()
	if searcher == nil {
		return nil, fmt.Errorf("knowledge searcher required")
	}
	configuration := DefaultConfig()
	if cfg != nil {
		configuration = configuration.Merge(*cfg)
	}
	providerName := "unset"
	if provider != nil {
		providerName = provider.Name()
	}
	logger.Info("api: building server",
		"provider", providerName,
		"persistence", sessions != nil,
		"gen_timeout", configuration.GenTimeout)
	srv := &Server{
		router:     chi.NewRouter(),
		searcher:   searcher,
		provider:   provider,
		sessions:   sessions,
		genTimeout: configuration.GenTimeout,
	}
	srv.routes()
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/v1/chat", s.handleChat)
	s.router.Get("/v1/search", s.handleSearch)
	s.router.Get("/v1/roles", s.handleRoles)
	s.router.Post("/v1/sessions", s.handleCreateSession)
	s.router.Get("/v1/sessions", s.handleListSessions)
	s.router.Get("/v1/sessions/{id}/messages", s.handleSessionMessages)
	s.router.Get("/v1/logs", s.handleLogs)
	s.router.Handle("/debug/vars", expvar.Handler())
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
