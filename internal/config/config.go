package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/provider"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
// Every field is read from the environment; see envDefault for defaults
type Config struct {
	// Server configuration
	Port            string        `env:"PORT" envDefault:"8000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"` // debug, info, warn, error
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`
	LogFile   string `env:"LOG_FILE"`

	// Outbound provider calls
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"5s"`
	UserAgent       string        `env:"USER_AGENT" envDefault:"ipgeo/0.1.0"`

	// ipapi.co (default provider)
	IPAPICoBaseURL string `env:"IPAPI_CO_BASE_URL" envDefault:"https://ipapi.co"`
	IPAPICoAPIKey  string `env:"IPAPI_CO_API_KEY"`

	// ip-api.com
	IPAPIComBaseURL string `env:"IP_API_COM_BASE_URL" envDefault:"http://ip-api.com"`
	IPAPIComAPIKey  string `env:"IP_API_COM_API_KEY"`

	// Refuse private/loopback/etc. addresses locally instead of asking a provider
	ReservedIPPrecheck bool `env:"RESERVED_IP_PRECHECK" envDefault:"false"`
}

// Load reads configuration from environment variables
// A .env file in the working directory is loaded first if it exists
// (for local development); in production variables are set directly.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("cannot read .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("cannot parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values that would only fail later at request time
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be positive, got %s", c.ProviderTimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}

	for name, raw := range map[string]string{
		"IPAPI_CO_BASE_URL":   c.IPAPICoBaseURL,
		"IP_API_COM_BASE_URL": c.IPAPIComBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}

	return nil
}

// Logger returns the logger settings
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level:      c.LogLevel,
		Pretty:     c.LogPretty,
		OutputFile: c.LogFile,
	}
}

// Providers returns the options used to build provider clients
func (c *Config) Providers() provider.Options {
	return provider.Options{
		Timeout:   c.ProviderTimeout,
		UserAgent: c.UserAgent,
		IPAPICo:   provider.Endpoint{BaseURL: c.IPAPICoBaseURL, APIKey: c.IPAPICoAPIKey},
		IPAPICom:  provider.Endpoint{BaseURL: c.IPAPIComBaseURL, APIKey: c.IPAPIComAPIKey},
	}
}
