package provider

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/go-resty/resty/v2"
)

// ipAPIComResponse is the payload of http://ip-api.com/json
// Success and failure share HTTP 200 and are told apart by Status.
type ipAPIComResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	Query       string            `json:"query"`
	Country     string            `json:"country"`
	CountryCode string            `json:"countryCode"`
	Region      string            `json:"region"`
	RegionName  string            `json:"regionName"`
	City        string            `json:"city"`
	Zip         string            `json:"zip"`
	Lat         models.Coordinate `json:"lat"`
	Lon         models.Coordinate `json:"lon"`
	Timezone    string            `json:"timezone"`
	ISP         string            `json:"isp"`
	Org         string            `json:"org"`
}

type ipAPIComClient struct {
	transport
}

// NewIPAPICom creates the client for http://ip-api.com
func NewIPAPICom(client *resty.Client, endpoint Endpoint, log *logger.Logger) Client {
	if log == nil {
		log = logger.Nop()
	}

	return ipAPIComClient{
		transport: newTransport(client, endpoint, log.WithProvider(models.ProviderIPAPICom.String())),
	}
}

func (c ipAPIComClient) Name() models.ProviderName {
	return models.ProviderIPAPICom
}

func (c ipAPIComClient) Lookup(ctx context.Context, ip string) (*models.GeoRecord, error) {
	return c.request(ctx, c.url("/json/"+url.PathEscape(ip)), ip)
}

func (c ipAPIComClient) LookupClientIP(ctx context.Context) (*models.GeoRecord, error) {
	return c.request(ctx, c.url("/json/"), "")
}

func (c ipAPIComClient) request(ctx context.Context, target, ip string) (*models.GeoRecord, error) {
	resp, err := c.get(ctx, target)
	if err != nil {
		return nil, err
	}

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	payload := ipAPIComResponse{}
	if err := decode(resp, &payload); err != nil {
		return nil, err
	}

	if !strings.EqualFold(payload.Status, "success") {
		return nil, c.payloadError(payload)
	}

	return c.normalize(payload, ip)
}

func (c ipAPIComClient) checkStatus(resp *resty.Response) error {
	code := resp.StatusCode()

	switch {
	case code < http.StatusMultipleChoices:
		return nil
	case isRedirect(code):
		return models.NewUpstreamError(redirectMessage(code), httpStatusError(resp))
	case code == http.StatusNotFound:
		return &models.GeoError{Kind: models.KindIPNotFound, Message: msgNotFound, Err: httpStatusError(resp)}
	case code == http.StatusTooManyRequests:
		return models.NewUpstreamError(msgRateLimited+" (HTTP 429).", httpStatusError(resp))
	default:
		return models.NewUpstreamError(httpStatusMessage(code), httpStatusError(resp))
	}
}

// payloadError maps a {"status": "fail"} body by its message
func (c ipAPIComClient) payloadError(payload ipAPIComResponse) error {
	message := models.FirstNonEmpty(payload.Message, "Unknown error from ip-api.com")

	switch {
	case containsAny(message, "invalid"):
		return models.NewInvalidIPError(message)
	case containsAny(message, "private range", "reserved range"):
		return models.NewReservedIPError(message)
	case containsAny(message, "quota", "limit"):
		return models.NewUpstreamError(msgRateLimited+": "+message, nil)
	case containsAny(message, "not found"):
		return models.NewIPNotFoundError(message)
	default:
		return models.NewUpstreamError(message, nil)
	}
}

func (c ipAPIComClient) normalize(payload ipAPIComResponse, requested string) (*models.GeoRecord, error) {
	ip := models.FirstNonEmpty(payload.Query, requested)
	if ip == "" {
		return nil, models.NewUpstreamError(msgMissingAddress, nil)
	}

	return &models.GeoRecord{
		IP:          ip,
		Country:     models.OptionalString(payload.CountryCode),
		CountryName: models.OptionalString(payload.Country),
		Region:      models.OptionalString(models.FirstNonEmpty(payload.RegionName, payload.Region)),
		City:        models.OptionalString(payload.City),
		PostalCode:  models.OptionalString(payload.Zip),
		Latitude:    payload.Lat.Float(),
		Longitude:   payload.Lon.Float(),
		Timezone:    models.OptionalString(payload.Timezone),
		ISP:         models.OptionalString(models.FirstNonEmpty(payload.ISP, payload.Org)),
	}, nil
}
