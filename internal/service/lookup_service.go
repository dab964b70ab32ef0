package service

import (
	"context"
	"fmt"
	"time"

	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/metrics"
	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/evyataryagoni/ipgeo/internal/netrange"
	"github.com/evyataryagoni/ipgeo/internal/provider"
)

const resultSuccess = "success"

// LookupService handles business logic for IP lookups
// This is the service layer - it sits between handlers and providers
//
// Responsibilities:
//   - Optionally refuse reserved addresses without calling out
//   - Pick the provider client
//   - Run exactly one lookup
//   - Record metrics and logs
//
// Errors from providers are returned unchanged.
type LookupService struct {
	selector *provider.Selector
	reserved *netrange.Table  // nil disables the reserved-address pre-check
	metrics  *metrics.Metrics // optional, can be nil
	logger   *logger.Logger
}

// Option customizes a LookupService
type Option func(*LookupService)

// WithReservedPrecheck rejects addresses found in table before any outbound call
func WithReservedPrecheck(table *netrange.Table) Option {
	return func(s *LookupService) {
		s.reserved = table
	}
}

// NewLookupService creates a new lookup service
//
// Parameters:
//   - selector: resolves provider names to clients
//   - m: metrics collector (optional, can be nil)
//   - log: logger (optional, can be nil)
func NewLookupService(selector *provider.Selector, m *metrics.Metrics, log *logger.Logger, opts ...Option) *LookupService {
	if log == nil {
		log = logger.NewDefault()
	}

	s := &LookupService{
		selector: selector,
		metrics:  m,
		logger:   log.WithComponent("LookupService"),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Lookup resolves req through the requested provider
//
// Flow:
//  1. Reserved pre-check (when enabled)
//  2. Resolve the provider client
//  3. Lookup(ip) or LookupClientIP() depending on req
//
// The error is a *models.GeoError for every provider failure. Anything
// else is a programming or wiring error and should become a 500.
func (s *LookupService) Lookup(ctx context.Context, req models.LookupRequest) (*models.GeoRecord, error) {
	log := s.logger.WithProvider(req.Provider.String())
	if req.HasIP() {
		log = log.WithIP(req.IP)
	}

	if s.reserved != nil && req.HasIP() {
		if label, ok := s.reserved.Lookup(req.IP); ok {
			err := models.NewReservedIPError(fmt.Sprintf("IP address %s is in a reserved range (%s).", req.IP, label))
			s.record(req, log, nil, err)
			return nil, err
		}
	}

	client := s.selector.Resolve(req.Provider)
	if client == nil {
		err := fmt.Errorf("no client configured for provider %q", req.Provider)
		s.record(req, log, nil, err)
		return nil, err
	}

	log.Debug().Str("mode", req.Mode()).Msg("Looking up IP address")

	start := time.Now()

	var (
		record *models.GeoRecord
		err    error
	)
	if req.HasIP() {
		record, err = client.Lookup(ctx, req.IP)
	} else {
		record, err = client.LookupClientIP(ctx)
	}

	if s.metrics != nil {
		s.metrics.ProviderRequestDuration.WithLabelValues(req.Provider.String()).Observe(time.Since(start).Seconds())
	}
	s.record(req, log, record, err)

	if err != nil {
		return nil, err
	}
	return record, nil
}

// record logs the outcome and counts it
func (s *LookupService) record(req models.LookupRequest, log *logger.Logger, record *models.GeoRecord, err error) {
	result := resultSuccess

	switch geoErr, ok := models.AsGeoError(err); {
	case err == nil:
		log.Info().
			Str("mode", req.Mode()).
			Str("resolved_ip", record.IP).
			Str("country", deref(record.Country)).
			Str("city", deref(record.City)).
			Msg("IP lookup successful")
	case ok:
		result = string(geoErr.Kind)
		log.Warn().
			Err(err).
			Str("mode", req.Mode()).
			Str("kind", result).
			Msg("IP lookup failed")
	default:
		result = models.CodeInternal
		log.Error().
			Err(err).
			Str("mode", req.Mode()).
			Msg("Unexpected error during IP lookup")
	}

	if s.metrics != nil {
		s.metrics.LookupsTotal.WithLabelValues(req.Provider.String(), req.Mode(), result).Inc()
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
