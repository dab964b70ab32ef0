package service

import (
	"context"
	"errors"
	"testing"

	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/metrics"
	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/evyataryagoni/ipgeo/internal/netrange"
	"github.com/evyataryagoni/ipgeo/internal/provider"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// newTestService wires a service over two mock providers
func newTestService(t *testing.T, opts ...Option) (*LookupService, *provider.MockClient, *provider.MockClient, *metrics.Metrics) {
	t.Helper()

	clientA := provider.NewMockClient(models.ProviderIPAPICo)
	clientB := provider.NewMockClient(models.ProviderIPAPICom)
	m := metrics.New(nil)

	svc := NewLookupService(provider.NewSelectorFromClients(clientA, clientB), m, logger.Nop(), opts...)
	return svc, clientA, clientB, m
}

// TestLookupService_Lookup_ExplicitIP tests that an explicit IP reaches the chosen provider
func TestLookupService_Lookup_ExplicitIP(t *testing.T) {
	tests := []struct {
		name     string
		provider models.ProviderName
	}{
		{"default provider", models.ProviderIPAPICo},
		{"alternative provider", models.ProviderIPAPICom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, clientA, clientB, m := newTestService(t)

			record, err := svc.Lookup(context.Background(), models.LookupRequest{IP: "1.1.1.1", Provider: tt.provider})

			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if record.IP != "1.1.1.1" {
				t.Errorf("expected ip 1.1.1.1, got %s", record.IP)
			}

			called, idle := clientA, clientB
			if tt.provider == models.ProviderIPAPICom {
				called, idle = clientB, clientA
			}
			if len(called.LookupCalls) != 1 || called.LookupCalls[0] != "1.1.1.1" {
				t.Errorf("expected one lookup of 1.1.1.1, got %v", called.LookupCalls)
			}
			if called.ClientIPCalls != 0 {
				t.Errorf("expected no client-IP lookups, got %d", called.ClientIPCalls)
			}
			if idle.Calls() != 0 {
				t.Errorf("expected other provider untouched, got %d calls", idle.Calls())
			}

			got := testutil.ToFloat64(m.LookupsTotal.WithLabelValues(tt.provider.String(), "explicit", "success"))
			if got != 1 {
				t.Errorf("expected 1 successful lookup recorded, got %v", got)
			}
		})
	}
}

// TestLookupService_Lookup_ClientIP tests client-IP mode
func TestLookupService_Lookup_ClientIP(t *testing.T) {
	svc, clientA, _, m := newTestService(t)

	record, err := svc.Lookup(context.Background(), models.LookupRequest{Provider: models.ProviderIPAPICo})

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if record.IP != "8.8.8.8" {
		t.Errorf("expected the provider-detected address, got %s", record.IP)
	}
	if clientA.ClientIPCalls != 1 {
		t.Errorf("expected 1 client-IP lookup, got %d", clientA.ClientIPCalls)
	}
	if len(clientA.LookupCalls) != 0 {
		t.Errorf("expected no explicit lookups, got %v", clientA.LookupCalls)
	}
	if got := testutil.ToFloat64(m.LookupsTotal.WithLabelValues("ipapi.co", "client_ip", "success")); got != 1 {
		t.Errorf("expected 1 client_ip lookup recorded, got %v", got)
	}
}

// TestLookupService_Lookup_DomainErrors tests that provider errors pass through unchanged
func TestLookupService_Lookup_DomainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  *models.GeoError
	}{
		{"invalid", models.NewInvalidIPError("Invalid IP Address")},
		{"reserved", models.NewReservedIPError("private range")},
		{"not found", models.NewIPNotFoundError("No geolocation information found for this IP address.")},
		{"upstream", models.NewUpstreamError("IP provider returned HTTP 500", errors.New("boom"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, clientA, _, m := newTestService(t)
			clientA.Err = tt.err

			record, err := svc.Lookup(context.Background(), models.LookupRequest{IP: "8.8.8.8", Provider: models.ProviderIPAPICo})

			if record != nil {
				t.Errorf("expected nil record, got %+v", record)
			}
			if err != tt.err {
				t.Errorf("expected error to be returned unchanged, got %v", err)
			}

			got := testutil.ToFloat64(m.LookupsTotal.WithLabelValues("ipapi.co", "explicit", string(tt.err.Kind)))
			if got != 1 {
				t.Errorf("expected 1 %s lookup recorded, got %v", tt.err.Kind, got)
			}
			if count := testutil.CollectAndCount(m.ProviderRequestDuration); count != 1 {
				t.Errorf("expected provider latency observed, got %d series", count)
			}
		})
	}
}

// TestLookupService_Lookup_UnexpectedError tests that non-domain errors are not translated
func TestLookupService_Lookup_UnexpectedError(t *testing.T) {
	svc, clientA, _, m := newTestService(t)
	clientA.Err = errors.New("something broke")

	_, err := svc.Lookup(context.Background(), models.LookupRequest{IP: "8.8.8.8", Provider: models.ProviderIPAPICo})

	if _, ok := models.AsGeoError(err); ok {
		t.Fatalf("expected a plain error, got GeoError %v", err)
	}
	if got := testutil.ToFloat64(m.LookupsTotal.WithLabelValues("ipapi.co", "explicit", "internal_error")); got != 1 {
		t.Errorf("expected 1 internal_error lookup recorded, got %v", got)
	}
}

// TestLookupService_Lookup_UnconfiguredProvider tests a selector missing a provider
func TestLookupService_Lookup_UnconfiguredProvider(t *testing.T) {
	clientA := provider.NewMockClient(models.ProviderIPAPICo)
	svc := NewLookupService(provider.NewSelectorFromClients(clientA), nil, logger.Nop())

	_, err := svc.Lookup(context.Background(), models.LookupRequest{IP: "8.8.8.8", Provider: models.ProviderIPAPICom})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, ok := models.AsGeoError(err); ok {
		t.Errorf("expected a plain error, got GeoError %v", err)
	}
	if clientA.Calls() != 0 {
		t.Errorf("expected no calls, got %d", clientA.Calls())
	}
}

// TestLookupService_Lookup_ReservedPrecheck tests the local reserved-range short-circuit
func TestLookupService_Lookup_ReservedPrecheck(t *testing.T) {
	table, err := netrange.NewReservedTable()
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}

	tests := []struct {
		name          string
		ip            string
		expectedCalls int
		expectedErr   error
	}{
		{"private", "192.168.1.1", 0, models.ErrReservedIP},
		{"loopback v6", "::1", 0, models.ErrReservedIP},
		{"routable", "8.8.8.8", 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, clientA, _, _ := newTestService(t, WithReservedPrecheck(table))

			_, err := svc.Lookup(context.Background(), models.LookupRequest{IP: tt.ip, Provider: models.ProviderIPAPICo})

			if tt.expectedErr == nil && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tt.expectedErr != nil && !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected %v, got %v", tt.expectedErr, err)
			}
			if clientA.Calls() != tt.expectedCalls {
				t.Errorf("expected %d provider calls, got %d", tt.expectedCalls, clientA.Calls())
			}
		})
	}
}

// TestLookupService_Lookup_PrecheckDisabled tests that reserved addresses reach the provider by default
func TestLookupService_Lookup_PrecheckDisabled(t *testing.T) {
	svc, clientA, _, _ := newTestService(t)

	if _, err := svc.Lookup(context.Background(), models.LookupRequest{IP: "192.168.1.1", Provider: models.ProviderIPAPICo}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if clientA.Calls() != 1 {
		t.Errorf("expected 1 provider call, got %d", clientA.Calls())
	}
}
