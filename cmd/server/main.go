package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/evyataryagoni/ipgeo/internal/config"
	"github.com/evyataryagoni/ipgeo/internal/handler"
	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/metrics"
	"github.com/evyataryagoni/ipgeo/internal/netrange"
	"github.com/evyataryagoni/ipgeo/internal/provider"
	"github.com/evyataryagoni/ipgeo/internal/router"
	"github.com/evyataryagoni/ipgeo/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

// @title           IP Geolocation API
// @version         1.0
// @description     Resolves geolocation metadata for IPv4/IPv6 addresses through interchangeable third-party providers

// @contact.name   Evyatar Yagoni
// @contact.email  evyatar@example.com

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8000
// @BasePath  /
func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize components
	appLogger := setupLogger(appConfig)
	metricsCollector := setupMetrics(appLogger)
	selector := setupProviders(appConfig, appLogger)

	// Build application layers
	lookupService := service.NewLookupService(selector, metricsCollector, appLogger, setupServiceOptions(appConfig, appLogger)...)
	lookupHandler := handler.NewLookupHandler(lookupService)
	appRouter := router.SetupRouter(lookupHandler, metricsCollector, appLogger)

	// Start server
	startServer(appConfig, appRouter, appLogger)
}

// setupLogger initializes the structured logger
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(appConfig.Logger())

	appLogger.Info().Msg("Starting IP geolocation server...")
	appLogger.Info().
		Str("port", appConfig.Port).
		Str("log_level", appConfig.LogLevel).
		Dur("provider_timeout", appConfig.ProviderTimeout).
		Str("ipapi_co_base_url", appConfig.IPAPICoBaseURL).
		Bool("ipapi_co_api_key", appConfig.IPAPICoAPIKey != "").
		Str("ip_api_com_base_url", appConfig.IPAPIComBaseURL).
		Bool("ip_api_com_api_key", appConfig.IPAPIComAPIKey != "").
		Bool("reserved_ip_precheck", appConfig.ReservedIPPrecheck).
		Msg("Configuration loaded")

	return appLogger
}

// setupMetrics initializes the Prometheus metrics collector
// Go runtime and process collectors are registered next to the application metrics
func setupMetrics(log *logger.Logger) *metrics.Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metricsCollector := metrics.New(registry)
	log.Info().Msg("Metrics initialized")
	return metricsCollector
}

// setupProviders builds one client per supported provider
func setupProviders(appConfig *config.Config, log *logger.Logger) *provider.Selector {
	selector := provider.NewSelector(appConfig.Providers(), log)

	names := make([]string, 0, len(selector.Names()))
	for _, name := range selector.Names() {
		names = append(names, name.String())
	}
	log.Info().Strs("providers", names).Msg("Providers initialized")

	return selector
}

// setupServiceOptions enables the optional reserved-address pre-check
func setupServiceOptions(appConfig *config.Config, log *logger.Logger) []service.Option {
	if !appConfig.ReservedIPPrecheck {
		return nil
	}

	table, err := netrange.NewReservedTable()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build reserved range table")
	}

	log.Info().Msg("Reserved IP pre-check enabled")
	return []service.Option{service.WithReservedPrecheck(table)}
}

// startServer serves until SIGINT/SIGTERM, then drains in-flight requests
func startServer(appConfig *config.Config, appRouter http.Handler, log *logger.Logger) {
	server := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: appRouter,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Str("port", appConfig.Port).
			Str("api_endpoint", "http://localhost:"+appConfig.Port+"/v1/ip/lookup?ip=<ip>&provider=<provider>").
			Str("health_check", "http://localhost:"+appConfig.Port+"/health").
			Str("metrics", "http://localhost:"+appConfig.Port+"/metrics").
			Str("swagger", "http://localhost:"+appConfig.Port+"/swagger/index.html").
			Msg("Server is running")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
		return
	}
	log.Info().Msg("Server stopped")
}
