package middleware

import (
	"net/http"
	"time"

	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// LoggingMiddleware logs HTTP requests with structured data
// Must run after RequestID so every line carries the request ID
func LoggingMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap response writer to capture status code
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLog := log.WithRequestID(middleware.GetReqID(r.Context()))

			reqLog.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", r.URL.RawQuery).
				Str("remote_addr", r.RemoteAddr).
				Str("user_agent", r.UserAgent()).
				Msg("Request started")

			next.ServeHTTP(ww, r)

			// Determine log level based on status code
			logEvent := reqLog.Info()
			if ww.Status() >= 500 {
				logEvent = reqLog.Error()
			} else if ww.Status() >= 400 {
				logEvent = reqLog.Warn()
			}

			logEvent.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration_ms", time.Since(start)).
				Msg("Request completed")
		})
	}
}
