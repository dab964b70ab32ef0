package config

import (
	"testing"
	"time"

	"github.com/evyataryagoni/ipgeo/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults tests the values used when nothing is set
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://ipapi.co", cfg.IPAPICoBaseURL)
	assert.Equal(t, "http://ip-api.com", cfg.IPAPIComBaseURL)
	assert.Empty(t, cfg.IPAPICoAPIKey)
	assert.False(t, cfg.ReservedIPPrecheck)
}

// TestLoad_FromEnvironment tests that every variable is honoured
func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("PROVIDER_TIMEOUT", "750ms")
	t.Setenv("USER_AGENT", "custom/1.0")
	t.Setenv("IPAPI_CO_BASE_URL", "http://localhost:1234")
	t.Setenv("IPAPI_CO_API_KEY", "co-key")
	t.Setenv("IP_API_COM_API_KEY", "com-key")
	t.Setenv("RESERVED_IP_PRECHECK", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.Logger().Level)
	assert.True(t, cfg.Logger().Pretty)
	assert.True(t, cfg.ReservedIPPrecheck)

	assert.Equal(t, provider.Options{
		Timeout:   750 * time.Millisecond,
		UserAgent: "custom/1.0",
		IPAPICo:   provider.Endpoint{BaseURL: "http://localhost:1234", APIKey: "co-key"},
		IPAPICom:  provider.Endpoint{BaseURL: "http://ip-api.com", APIKey: "com-key"},
	}, cfg.Providers())
}

// TestLoad_Invalid tests rejected values
func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unparsable timeout", "PROVIDER_TIMEOUT", "soon"},
		{"zero timeout", "PROVIDER_TIMEOUT", "0s"},
		{"negative shutdown", "SHUTDOWN_TIMEOUT", "-1s"},
		{"relative base URL", "IPAPI_CO_BASE_URL", "ipapi.co"},
		{"broken base URL", "IP_API_COM_BASE_URL", "http://%zz"},
		{"bad bool", "RESERVED_IP_PRECHECK", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
