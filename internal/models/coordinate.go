package models

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// coordinatePrecision keeps 6 decimal places (~0.1m), enough for any IP geolocation
const coordinatePrecision = 1e6

// Coordinate is a latitude or longitude as sent by a provider
// Providers disagree on the wire type: ipapi.co may send "37.386" while
// ip-api.com sends 37.386. Both are accepted. Anything that does not parse
// as a finite number decodes to an empty Coordinate rather than an error,
// so a single bad field never fails the whole lookup.
type Coordinate struct {
	value *float64
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	c.value = nil

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	c.value = ParseCoordinate(raw)
	return nil
}

// Float returns the coordinate or nil when unknown
func (c Coordinate) Float() *float64 {
	return c.value
}

// ParseCoordinate parses a decimal string and rounds it to 6 places
// Returns nil for empty, non-numeric, NaN or infinite input
func ParseCoordinate(raw string) *float64 {
	if raw == "" {
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}

	rounded := math.Round(f*coordinatePrecision) / coordinatePrecision
	return &rounded
}
