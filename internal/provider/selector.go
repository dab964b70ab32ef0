package provider

import (
	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/go-resty/resty/v2"
)

// Factory builds a configured client for one provider
type Factory func(client *resty.Client, opts Options, log *logger.Logger) Client

// defaultFactories is the closed set of supported providers
func defaultFactories() map[models.ProviderName]Factory {
	return map[models.ProviderName]Factory{
		models.ProviderIPAPICo: func(client *resty.Client, opts Options, log *logger.Logger) Client {
			return NewIPAPICo(client, opts.IPAPICo, log)
		},
		models.ProviderIPAPICom: func(client *resty.Client, opts Options, log *logger.Logger) Client {
			return NewIPAPICom(client, opts.IPAPICom, log)
		},
	}
}

// Selector maps a provider name to a ready-to-use client
// Clients are built once, up front, and never change afterwards,
// so a Selector is safe for concurrent use without locking.
type Selector struct {
	clients map[models.ProviderName]Client
}

// NewSelector builds one client per supported provider from opts
// All clients share a single resty client (and its connection pool).
func NewSelector(opts Options, log *logger.Logger) *Selector {
	if log == nil {
		log = logger.NewDefault()
	}

	httpClient := NewHTTPClient(opts, log)
	clients := make([]Client, 0, len(models.SupportedProviders()))

	factories := defaultFactories()
	for _, name := range models.SupportedProviders() {
		clients = append(clients, factories[name](httpClient, opts, log))
	}

	return NewSelectorFromClients(clients...)
}

// NewSelectorFromClients builds a selector over pre-built clients
// A later client replaces an earlier one with the same name.
func NewSelectorFromClients(clients ...Client) *Selector {
	s := &Selector{clients: make(map[models.ProviderName]Client, len(clients))}
	for _, client := range clients {
		s.clients[client.Name()] = client
	}
	return s
}

// Resolve returns the client registered under name
// name comes from a validated request, so nil only means the
// selector was built without that provider.
func (s *Selector) Resolve(name models.ProviderName) Client {
	return s.clients[name]
}

// Names lists the registered providers, default first
func (s *Selector) Names() []models.ProviderName {
	names := make([]models.ProviderName, 0, len(s.clients))
	for _, name := range models.SupportedProviders() {
		if _, ok := s.clients[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
