package restapi

import (
	"log/slog"
	"net/http"
	"time"

	"routekit.transitlab.org/internal/logging"
)

// NewRequestLoggingMiddleware logs one line per completed request and seeds
// the request context with the logger so handlers can pick it up through
// logging.FromContext. It must sit inside RequestIDMiddleware so the id is
// available when the line is written.
func NewRequestLoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			r = r.WithContext(logging.WithLogger(r.Context(), logger))

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			logging.LogHTTPRequest(logger,
				r.Method,
				r.URL.Path,
				recorder.status,
				float64(time.Since(start).Microseconds())/1000,
				slog.String("request_id", GetRequestID(r.Context())),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.String("component", "http_server"))
		})
	}
}
