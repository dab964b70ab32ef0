package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader is read from callers and echoed back
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength caps caller supplied IDs before they reach logs
const maxRequestIDLength = 128

// RequestID tags every request with an ID
// A caller supplied X-Request-ID is kept, otherwise a UUID is generated.
// The ID is stored under chi's key so middleware.GetReqID keeps working.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
