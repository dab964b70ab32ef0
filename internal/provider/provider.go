package provider

import (
	"context"
	"time"

	"github.com/evyataryagoni/ipgeo/internal/models"
)

// Client is the contract every geolocation provider implements
// This is the provider layer - it deals with one third-party API only
//
// Responsibilities:
//   - Issue exactly one outbound GET per call (no retries, no caching)
//   - Normalize the provider payload into a models.GeoRecord
//   - Map every failure to a *models.GeoError
//
// Implementations are stateless and safe for concurrent use.
type Client interface {
	// Name returns the identifier callers use to select this provider
	Name() models.ProviderName

	// Lookup resolves an already validated IP literal
	Lookup(ctx context.Context, ip string) (*models.GeoRecord, error)

	// LookupClientIP asks the provider to geolocate the address it sees
	// the request coming from. No address is sent.
	LookupClientIP(ctx context.Context) (*models.GeoRecord, error)
}

// Endpoint is where a provider lives and how to authenticate with it
type Endpoint struct {
	BaseURL string // e.g. https://ipapi.co, no trailing slash required
	APIKey  string // Optional, sent as ?key=
}

// Options configures all provider clients
// Built once at startup from config.Config
type Options struct {
	Timeout   time.Duration // Upper bound for a single outbound call
	UserAgent string

	IPAPICo  Endpoint
	IPAPICom Endpoint
}

// DefaultOptions returns the public endpoints with a 5 second timeout
func DefaultOptions() Options {
	return Options{
		Timeout:   5 * time.Second,
		UserAgent: "ipgeo/0.1.0",
		IPAPICo:   Endpoint{BaseURL: "https://ipapi.co"},
		IPAPICom:  Endpoint{BaseURL: "http://ip-api.com"},
	}
}
