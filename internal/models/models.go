package models

import "strings"

// ProviderName identifies one of the supported upstream geolocation providers
// The set is closed: request validation rejects anything not listed here
type ProviderName string

const (
	// ProviderIPAPICo is https://ipapi.co (the default provider)
	ProviderIPAPICo ProviderName = "ipapi.co"
	// ProviderIPAPICom is http://ip-api.com
	ProviderIPAPICom ProviderName = "ip-api.com"

	// DefaultProvider is used when the caller does not pick a provider
	DefaultProvider = ProviderIPAPICo
)

// SupportedProviders returns every provider identifier, default first
func SupportedProviders() []ProviderName {
	return []ProviderName{ProviderIPAPICo, ProviderIPAPICom}
}

// String implements fmt.Stringer
func (p ProviderName) String() string {
	return string(p)
}

// GeoRecord is the provider-agnostic result of a successful lookup
// Optional fields are pointers so that unknown values serialize as null
// instead of empty strings or zeroes
type GeoRecord struct {
	IP          string   `json:"ip" example:"8.8.8.8"`                   // Address that was resolved
	Country     *string  `json:"country" example:"US"`                   // ISO 3166 alpha-2 code
	CountryName *string  `json:"country_name" example:"United States"`   // Full country name
	Region      *string  `json:"region" example:"California"`            // Region / state
	City        *string  `json:"city" example:"Mountain View"`           // City name
	PostalCode  *string  `json:"postal_code" example:"94043"`            // Postal / ZIP code
	Latitude    *float64 `json:"latitude" example:"37.386"`              // Decimal degrees
	Longitude   *float64 `json:"longitude" example:"-122.0838"`          // Decimal degrees
	Timezone    *string  `json:"timezone" example:"America/Los_Angeles"` // IANA timezone
	ISP         *string  `json:"isp" example:"Google LLC"`               // Operating organization
}

// LookupRequest is an already validated lookup request
// Build it with service.ParseLookupRequest, never by hand from user input
type LookupRequest struct {
	IP       string       // Empty means client-IP mode
	Provider ProviderName // Always one of SupportedProviders
}

// HasIP reports whether an explicit address was supplied
func (r LookupRequest) HasIP() bool {
	return r.IP != ""
}

// Mode returns "explicit" or "client_ip", used as a metrics/log label
func (r LookupRequest) Mode() string {
	if r.HasIP() {
		return "explicit"
	}
	return "client_ip"
}

// ErrorResponse is the JSON body for every non-2xx response
type ErrorResponse struct {
	Code    string       `json:"code" example:"ip_not_found"`
	Message string       `json:"message" example:"No geolocation information found for this IP address."`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError describes one rejected request parameter
type FieldError struct {
	Field   string `json:"field" example:"ip"`
	Message string `json:"message" example:"ip must be a valid IPv4 or IPv6 address"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// OptionalString converts an upstream value into an optional field
// Blank strings become nil
func OptionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// FirstNonEmpty returns the first argument that is not blank
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
