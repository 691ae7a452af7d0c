// internal/middleware/logging.go
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"bayou-blog/internal/utils"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// Logging records one line per request and feeds the metrics collector.
func Logging(logger *slog.Logger, metrics *utils.MetricsCollector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			metrics.IncrementRequests()
			if rec.status >= http.StatusInternalServerError {
				metrics.IncrementErrors()
			}
			metrics.AddOperationLatency(r.Method+" "+r.URL.Path, elapsed)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", elapsed,
			)
		})
	}
}
