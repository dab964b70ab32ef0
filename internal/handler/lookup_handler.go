package handler

import (
	"errors"
	"net/http"

	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/evyataryagoni/ipgeo/internal/service"
	"github.com/goccy/go-json"
)

// LookupHandler handles HTTP requests for IP lookups
// This is the handler layer - it deals with HTTP concerns only
//
// Responsibilities:
//   - Parse and validate query parameters
//   - Call service methods
//   - Map results and errors to status codes and JSON bodies
//   - NO provider logic (that's in the provider layer)
type LookupHandler struct {
	service *service.LookupService
}

// NewLookupHandler creates a new lookup handler with the given service
func NewLookupHandler(service *service.LookupService) *LookupHandler {
	return &LookupHandler{
		service: service,
	}
}

// Lookup handles GET /v1/ip/lookup?ip=<ip>&provider=<provider>
// @Summary      Geolocate an IP address
// @Description  Resolve country, region, city, coordinates, timezone and ISP for an IP address.
// @Description  Without ip the provider geolocates the address the request reaches it from.
// @Tags         IP Lookup
// @Produce      json
// @Param        ip        query     string  false  "IPv4 or IPv6 address"  example(8.8.8.8)
// @Param        provider  query     string  false  "Geolocation provider"  Enums(ipapi.co, ip-api.com)  default(ipapi.co)
// @Success      200  {object}  models.GeoRecord
// @Failure      400  {object}  models.ErrorResponse  "Invalid or reserved IP address"
// @Failure      404  {object}  models.ErrorResponse  "No geolocation data for this IP"
// @Failure      422  {object}  models.ErrorResponse  "Invalid request parameters"
// @Failure      500  {object}  models.ErrorResponse  "Internal server error"
// @Failure      502  {object}  models.ErrorResponse  "Provider failure"
// @Router       /v1/ip/lookup [get]
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	// Step 1: Validate query parameters
	query := r.URL.Query()
	req, err := service.ParseLookupRequest(query.Get("ip"), query.Get("provider"))
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			respondJSON(w, http.StatusUnprocessableEntity, validationErr.Response())
			return
		}
		respondInternalError(w)
		return
	}

	// Step 2: Call service layer
	record, err := h.service.Lookup(r.Context(), req)
	if err != nil {
		if geoErr, ok := models.AsGeoError(err); ok {
			respondJSON(w, geoErr.StatusCode(), geoErr.Response())
			return
		}
		// Anything that is not a domain error is our fault
		respondInternalError(w)
		return
	}

	// Step 3: Return success response
	respondJSON(w, http.StatusOK, record)
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}

// respondInternalError writes the generic 500 envelope
func respondInternalError(w http.ResponseWriter) {
	respondJSON(w, http.StatusInternalServerError, models.ErrorResponse{
		Code:    models.CodeInternal,
		Message: models.MessageInternal,
	})
}
