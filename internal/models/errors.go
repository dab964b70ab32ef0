package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the stable, machine-readable code of a domain error
type ErrorKind string

const (
	// KindInvalidIP - the address is not a syntactically valid IP
	KindInvalidIP ErrorKind = "invalid_ip"
	// KindReservedIP - private, loopback, link-local or otherwise non-routable address
	KindReservedIP ErrorKind = "reserved_ip"
	// KindIPNotFound - valid, routable address the provider has no data for
	KindIPNotFound ErrorKind = "ip_not_found"
	// KindUpstream - any other provider failure (HTTP errors, bad payloads, rate limits, network)
	KindUpstream ErrorKind = "upstream_error"
)

// Codes for the two boundary-level failures that are not domain errors
const (
	CodeValidation = "validation_error"
	CodeInternal   = "internal_error"
)

// Messages used by the boundary-level responses
const (
	MessageValidation = "Invalid request parameters"
	MessageInternal   = "An unexpected error occurred while processing the request."
)

// StatusCode maps the kind to the HTTP status returned to callers
func (k ErrorKind) StatusCode() int {
	switch k {
	case KindInvalidIP, KindReservedIP:
		return http.StatusBadRequest
	case KindIPNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// Sentinels for errors.Is checks, e.g. errors.Is(err, models.ErrIPNotFound)
var (
	ErrInvalidIP  = &GeoError{Kind: KindInvalidIP}
	ErrReservedIP = &GeoError{Kind: KindReservedIP}
	ErrIPNotFound = &GeoError{Kind: KindIPNotFound}
	ErrUpstream   = &GeoError{Kind: KindUpstream}
)

// GeoError is the only error type a provider client returns
type GeoError struct {
	Kind    ErrorKind
	Message string
	Err     error // Underlying cause, logged but never sent to callers
}

// Error implements the error interface
func (e *GeoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause
func (e *GeoError) Unwrap() error {
	return e.Err
}

// Is matches any GeoError of the same kind
func (e *GeoError) Is(target error) bool {
	t, ok := target.(*GeoError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// StatusCode is a shortcut for e.Kind.StatusCode()
func (e *GeoError) StatusCode() int {
	return e.Kind.StatusCode()
}

// Response builds the JSON body sent to callers
func (e *GeoError) Response() ErrorResponse {
	return ErrorResponse{
		Code:    string(e.Kind),
		Message: e.Message,
	}
}

// AsGeoError extracts a *GeoError from an error chain
func AsGeoError(err error) (*GeoError, bool) {
	var geoErr *GeoError
	if errors.As(err, &geoErr) {
		return geoErr, true
	}
	return nil, false
}

func NewInvalidIPError(message string) *GeoError {
	return &GeoError{Kind: KindInvalidIP, Message: message}
}

func NewReservedIPError(message string) *GeoError {
	return &GeoError{Kind: KindReservedIP, Message: message}
}

func NewIPNotFoundError(message string) *GeoError {
	return &GeoError{Kind: KindIPNotFound, Message: message}
}

func NewUpstreamError(message string, cause error) *GeoError {
	return &GeoError{Kind: KindUpstream, Message: message, Err: cause}
}
