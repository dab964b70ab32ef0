package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/evyataryagoni/ipgeo/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// unmatchedRoute labels requests no route matched, keeping label cardinality bounded
const unmatchedRoute = "unmatched"

// MetricsMiddleware records HTTP metrics for each request
// Endpoints are labelled by route pattern, not raw path
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			endpoint := routePattern(r)
			status := strconv.Itoa(statusOf(ww))
			duration := time.Since(start).Seconds()

			if r.ContentLength > 0 {
				m.HTTPRequestSize.WithLabelValues(r.Method, endpoint).Observe(float64(r.ContentLength))
			}

			m.HTTPRequestsTotal.WithLabelValues(r.Method, endpoint, status).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, endpoint, status).Observe(duration)
			m.HTTPResponseSize.WithLabelValues(r.Method, endpoint, status).Observe(float64(ww.BytesWritten()))
		})
	}
}

// routePattern returns the chi route pattern matched for r
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}

// statusOf defaults to 200 when the handler never called WriteHeader
func statusOf(ww middleware.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}
