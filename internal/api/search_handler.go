// File path: internal/api/search_handler.go
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nimbuserp/nimbus-assist/internal/common"
	"github.com/nimbuserp/nimbus-assist/internal/common/telemetry"
	"github.com/nimbuserp/nimbus-assist/internal/format"
)

// handleSearch exposes the raw aggregator result without role formatting,
// useful for the UI's source attribution and for debugging thresholds.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	query := r.URL.Query().Get("q")
	if query == "" {
		logger.Warn("api: search missing query parameter")
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing q parameter"))
		return
	}
	start := time.Now()
	result := s.searcher.Search(query)
	telemetry.RecordSearch(result.Matched, result.Source, time.Since(start))
	logger.Info("api: search request", "query", query, "matched", result.Matched, "source", result.Source)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"roles": format.Roles()})
}
