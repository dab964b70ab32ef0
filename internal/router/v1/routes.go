package v1

import (
	"github.com/evyataryagoni/ipgeo/internal/handler"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures all v1 API routes
// This function is called by the main router to setup /v1/* endpoints
func SetupRoutes(lookupHandler *handler.LookupHandler) chi.Router {
	r := chi.NewRouter()

	// GET /v1/ip/lookup?ip=<ip>&provider=<provider>
	r.Get("/ip/lookup", lookupHandler.Lookup)

	return r
}
