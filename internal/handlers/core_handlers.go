// internal/handlers/core_handlers.go
package handlers

import (
	"net/http"
)

// HandleHealth reports liveness plus the request counters collected since
// startup.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"uptime":        s.Metrics.Uptime().String(),
		"request_count": s.Metrics.RequestCount(),
		"error_count":   s.Metrics.ErrorCount(),
	})
}
