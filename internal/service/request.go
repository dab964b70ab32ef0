package service

import (
	"strings"

	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches tag parsing, so one instance is shared
var validate = validator.New()

// ValidationError lists every rejected request parameter
// The handler turns it into a 422 response
type ValidationError struct {
	Fields []models.FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// Response builds the JSON body sent to callers
func (e *ValidationError) Response() models.ErrorResponse {
	return models.ErrorResponse{
		Code:    models.CodeValidation,
		Message: models.MessageValidation,
		Details: e.Fields,
	}
}

// ParseLookupRequest validates raw query parameters
//
// Rules:
//   - ip: surrounding whitespace is ignored; empty means client-IP mode;
//     anything else must be an IPv4 or IPv6 literal
//   - provider: empty means the default provider; anything else must be
//     one of models.SupportedProviders
//
// On success the returned request is safe to hand to LookupService.
func ParseLookupRequest(ip, provider string) (models.LookupRequest, error) {
	var fields []models.FieldError

	ip = strings.TrimSpace(ip)
	if ip != "" {
		if err := validate.Var(ip, "ip"); err != nil {
			fields = append(fields, models.FieldError{
				Field:   "ip",
				Message: "ip must be a valid IPv4 or IPv6 address",
			})
		}
	}

	name := models.DefaultProvider
	provider = strings.TrimSpace(provider)
	if provider != "" {
		if err := validate.Var(provider, "oneof="+strings.Join(providerNames(), " ")); err != nil {
			fields = append(fields, models.FieldError{
				Field:   "provider",
				Message: "provider must be one of: " + strings.Join(providerNames(), ", "),
			})
		}
		name = models.ProviderName(provider)
	}

	if len(fields) > 0 {
		return models.LookupRequest{}, &ValidationError{Fields: fields}
	}

	return models.LookupRequest{IP: ip, Provider: name}, nil
}

func providerNames() []string {
	providers := models.SupportedProviders()
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.String()
	}
	return names
}
