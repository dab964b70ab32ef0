package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
)

// Recoverer turns a panic into the generic 500 JSON response
// The panic value and stack go to the log, never to the caller
func Recoverer(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					// net/http uses this to abort the response silently
					panic(rvr)
				}

				log.Error().
					Str("request_id", middleware.GetReqID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", rvr).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				body, _ := json.Marshal(models.ErrorResponse{
					Code:    models.CodeInternal,
					Message: models.MessageInternal,
				})

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write(body)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
