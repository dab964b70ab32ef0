package provider

import (
	"context"
	"sync"

	"github.com/evyataryagoni/ipgeo/internal/models"
)

// MockClient is a test double for the Client interface
// It allows tests to control behavior and verify interactions
type MockClient struct {
	mu sync.Mutex

	name models.ProviderName

	// Control behavior
	Record *models.GeoRecord // Returned on success; IP is overwritten by the looked up address
	Err    error             // Returned instead of Record when set
	Panic  interface{}       // Panics with this value when set

	// Track method calls for verification in tests
	LookupCalls   []string
	ClientIPCalls int
}

// NewMockClient creates a mock returning a Google-like record
func NewMockClient(name models.ProviderName) *MockClient {
	return &MockClient{
		name: name,
		Record: &models.GeoRecord{
			IP:          "8.8.8.8",
			Country:     models.OptionalString("US"),
			CountryName: models.OptionalString("United States"),
			City:        models.OptionalString("Mountain View"),
			ISP:         models.OptionalString("Google LLC"),
		},
		LookupCalls: []string{},
	}
}

// Name implements the Client interface
func (m *MockClient) Name() models.ProviderName {
	return m.name
}

// Lookup implements the Client interface
func (m *MockClient) Lookup(_ context.Context, ip string) (*models.GeoRecord, error) {
	m.mu.Lock()
	m.LookupCalls = append(m.LookupCalls, ip)
	m.mu.Unlock()

	return m.respond(ip)
}

// LookupClientIP implements the Client interface
func (m *MockClient) LookupClientIP(_ context.Context) (*models.GeoRecord, error) {
	m.mu.Lock()
	m.ClientIPCalls++
	m.mu.Unlock()

	return m.respond("")
}

// Calls returns the total number of lookups of either kind
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.LookupCalls) + m.ClientIPCalls
}

func (m *MockClient) respond(ip string) (*models.GeoRecord, error) {
	if m.Panic != nil {
		panic(m.Panic)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Record == nil {
		return nil, models.NewIPNotFoundError(msgNotFound)
	}

	record := *m.Record
	if ip != "" {
		record.IP = ip
	}
	return &record, nil
}
