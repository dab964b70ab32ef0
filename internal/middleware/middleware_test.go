package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/metrics"
	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

// newBufferLogger builds a Logger writing JSON lines into buf
func newBufferLogger(buf *bytes.Buffer) *logger.Logger {
	zl := zerolog.New(buf)
	return &logger.Logger{Logger: &zl}
}

// TestRequestID_Generated tests that a missing header gets a fresh UUID
func TestRequestID_Generated(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetReqID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(seen) != 36 {
		t.Errorf("expected a UUID, got %q", seen)
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("expected header %q, got %q", seen, rec.Header().Get(RequestIDHeader))
	}
}

// TestRequestID_Propagated tests that a caller supplied ID is kept
func TestRequestID_Propagated(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetReqID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "trace-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "trace-123" {
		t.Errorf("expected trace-123, got %q", seen)
	}
	if rec.Header().Get(RequestIDHeader) != "trace-123" {
		t.Errorf("expected echoed header, got %q", rec.Header().Get(RequestIDHeader))
	}
}

// TestRequestID_TooLong tests that oversized IDs are replaced
func TestRequestID_TooLong(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetReqID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("a", 500))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(seen) != 36 {
		t.Errorf("expected a generated UUID, got %d chars", len(seen))
	}
}

// TestRecoverer tests that panics become the generic 500 envelope
func TestRecoverer(t *testing.T) {
	var buf bytes.Buffer
	handler := Recoverer(newBufferLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ip/lookup", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected JSON content type, got %s", rec.Header().Get("Content-Type"))
	}

	var errResp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if errResp.Code != "internal_error" {
		t.Errorf("expected code internal_error, got %s", errResp.Code)
	}
	if strings.Contains(errResp.Message, "kaboom") {
		t.Error("panic value leaked to the caller")
	}
	if !strings.Contains(buf.String(), "kaboom") {
		t.Error("expected panic value in the log")
	}
}

// TestRecoverer_NoPanic tests that normal responses pass through
func TestRecoverer_NoPanic(t *testing.T) {
	handler := Recoverer(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", rec.Code)
	}
}

// TestLoggingMiddleware tests the completion log line
func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		expectedLevel string
	}{
		{"ok", http.StatusOK, "info"},
		{"client error", http.StatusUnprocessableEntity, "warn"},
		{"server error", http.StatusBadGateway, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := RequestID(LoggingMiddleware(newBufferLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})))

			req := httptest.NewRequest(http.MethodGet, "/lookup", nil)
			req.Header.Set(RequestIDHeader, "req-42")
			handler.ServeHTTP(httptest.NewRecorder(), req)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			var entry map[string]interface{}
			if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
				t.Fatalf("failed to decode log line: %v", err)
			}

			if entry["level"] != tt.expectedLevel {
				t.Errorf("expected level %s, got %v", tt.expectedLevel, entry["level"])
			}
			if entry["request_id"] != "req-42" {
				t.Errorf("expected request_id req-42, got %v", entry["request_id"])
			}
			if entry["status"] != float64(tt.status) {
				t.Errorf("expected status %d, got %v", tt.status, entry["status"])
			}
		})
	}
}

// TestMetricsMiddleware tests that requests are counted by route pattern
func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New(nil)

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	})

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/items/{id}", "200")); got != 2 {
		t.Errorf("expected 2 requests for /items/{id}, got %v", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404")); got != 1 {
		t.Errorf("expected 1 unmatched request, got %v", got)
	}
}
