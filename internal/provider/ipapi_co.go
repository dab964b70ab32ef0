package provider

import (
	"context"
	"net/http"
	"net/url"

	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/go-resty/resty/v2"
)

// ipapiCoResponse is the union of the success and error payloads of ipapi.co
// Errors may arrive with HTTP 200, e.g.
//
//	{"error": true, "reason": "Reserved IP Address", "ip": "127.0.0.1", "reserved": true}
type ipapiCoResponse struct {
	Error    bool   `json:"error"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Reserved bool   `json:"reserved"`

	IP          string            `json:"ip"`
	Country     string            `json:"country"`
	CountryName string            `json:"country_name"`
	Region      string            `json:"region"`
	City        string            `json:"city"`
	Postal      string            `json:"postal"`
	Latitude    models.Coordinate `json:"latitude"`
	Longitude   models.Coordinate `json:"longitude"`
	Timezone    string            `json:"timezone"`
	Org         string            `json:"org"`
}

type ipapiCoClient struct {
	transport
}

// NewIPAPICo creates the client for https://ipapi.co, the default provider
func NewIPAPICo(client *resty.Client, endpoint Endpoint, log *logger.Logger) Client {
	if log == nil {
		log = logger.Nop()
	}

	return ipapiCoClient{
		transport: newTransport(client, endpoint, log.WithProvider(models.ProviderIPAPICo.String())),
	}
}

func (c ipapiCoClient) Name() models.ProviderName {
	return models.ProviderIPAPICo
}

func (c ipapiCoClient) Lookup(ctx context.Context, ip string) (*models.GeoRecord, error) {
	return c.request(ctx, c.url("/"+url.PathEscape(ip)+"/json/"), ip)
}

func (c ipapiCoClient) LookupClientIP(ctx context.Context) (*models.GeoRecord, error) {
	return c.request(ctx, c.url("/json/"), "")
}

func (c ipapiCoClient) request(ctx context.Context, target, ip string) (*models.GeoRecord, error) {
	resp, err := c.get(ctx, target)
	if err != nil {
		return nil, err
	}

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	payload := ipapiCoResponse{}
	if err := decode(resp, &payload); err != nil {
		return nil, err
	}

	if payload.Error {
		return nil, c.payloadError(payload)
	}

	return c.normalize(payload, ip)
}

// checkStatus maps the documented HTTP error codes
func (c ipapiCoClient) checkStatus(resp *resty.Response) error {
	code := resp.StatusCode()

	switch {
	case code < http.StatusMultipleChoices:
		return nil
	case isRedirect(code):
		return models.NewUpstreamError(redirectMessage(code), httpStatusError(resp))
	case code == http.StatusBadRequest:
		return &models.GeoError{
			Kind:    models.KindInvalidIP,
			Message: "IP provider rejected the IP address as invalid.",
			Err:     httpStatusError(resp),
		}
	case code == http.StatusNotFound:
		return &models.GeoError{Kind: models.KindIPNotFound, Message: msgNotFound, Err: httpStatusError(resp)}
	case code == http.StatusForbidden:
		return models.NewUpstreamError("Authentication with IP provider failed (HTTP 403).", httpStatusError(resp))
	case code == http.StatusMethodNotAllowed:
		return models.NewUpstreamError("HTTP method not allowed when calling IP provider (HTTP 405).", httpStatusError(resp))
	case code == http.StatusTooManyRequests:
		return models.NewUpstreamError(msgRateLimited+" (HTTP 429).", httpStatusError(resp))
	default:
		return models.NewUpstreamError(httpStatusMessage(code), httpStatusError(resp))
	}
}

// payloadError maps an {"error": true} body to a domain error
func (c ipapiCoClient) payloadError(payload ipapiCoResponse) error {
	reason := models.FirstNonEmpty(payload.Reason, payload.Message, "Unknown error from ipapi.co")

	switch {
	case containsAny(reason, "invalid"):
		return models.NewInvalidIPError(reason)
	case payload.Reserved || containsAny(reason, "reserved"):
		return models.NewReservedIPError(reason)
	case containsAny(reason, "not found"):
		return models.NewIPNotFoundError(reason)
	case containsAny(reason, "ratelimited", "rate limit", "quota"):
		return models.NewUpstreamError(msgRateLimited+": "+reason, nil)
	default:
		return models.NewUpstreamError(reason, nil)
	}
}

func (c ipapiCoClient) normalize(payload ipapiCoResponse, requested string) (*models.GeoRecord, error) {
	ip := models.FirstNonEmpty(payload.IP, requested)
	if ip == "" {
		return nil, models.NewUpstreamError(msgMissingAddress, nil)
	}

	return &models.GeoRecord{
		IP:          ip,
		Country:     models.OptionalString(payload.Country),
		CountryName: models.OptionalString(payload.CountryName),
		Region:      models.OptionalString(payload.Region),
		City:        models.OptionalString(payload.City),
		PostalCode:  models.OptionalString(payload.Postal),
		Latitude:    payload.Latitude.Float(),
		Longitude:   payload.Longitude.Float(),
		Timezone:    models.OptionalString(payload.Timezone),
		ISP:         models.OptionalString(payload.Org),
	}, nil
}
