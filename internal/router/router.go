package router

import (
	_ "github.com/evyataryagoni/ipgeo/docs" // Swagger docs
	"github.com/evyataryagoni/ipgeo/internal/handler"
	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/metrics"
	custommiddleware "github.com/evyataryagoni/ipgeo/internal/middleware"
	v1 "github.com/evyataryagoni/ipgeo/internal/router/v1"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SetupRouter creates and configures the Chi router with all middleware and routes
//
// Parameters:
//   - lookupHandler: the IP lookup handler
//   - m: metrics collector
//   - log: structured logger
//
// Returns:
//   - chi.Router: configured router ready to use
func SetupRouter(lookupHandler *handler.LookupHandler, m *metrics.Metrics, log *logger.Logger) chi.Router {
	r := chi.NewRouter()

	// Order matters! RequestID first so every later middleware can log it,
	// Recoverer inside Logging and Metrics so recovered panics are logged and counted as 500s
	r.Use(custommiddleware.RequestID)              // Honour or generate X-Request-ID
	r.Use(middleware.RealIP)                       // Get real client IP (handles proxies/load balancers)
	r.Use(custommiddleware.LoggingMiddleware(log)) // Structured logging
	r.Use(custommiddleware.MetricsMiddleware(m))   // Collect Prometheus metrics
	r.Use(custommiddleware.Recoverer(log))         // Recover from panics and return the 500 envelope

	// Versioned API
	r.Mount("/v1", v1.SetupRoutes(lookupHandler))

	// Unversioned alias of /v1/ip/lookup
	r.Get("/lookup", lookupHandler.Lookup)

	// Health check endpoint - used by load balancers and monitoring
	r.Get("/health", handler.Health)

	// Prometheus metrics endpoint
	r.Handle("/metrics", m.Handler())

	// Swagger UI endpoint - API documentation
	// Access at: http://localhost:8000/swagger/index.html
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
