package provider

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// Messages shared by both clients
const (
	msgNotFound       = "No geolocation information found for this IP address."
	msgRateLimited    = "IP provider rate limit or quota exceeded"
	msgRequestFailed  = "Request to IP provider failed"
	msgTimeout        = "Request to IP provider timed out"
	msgBadPayload     = "Failed to decode IP provider response as JSON"
	msgMissingAddress = "IP provider response did not include an IP address"
)

// NewHTTPClient builds the resty client shared by all providers
// The timeout bounds every outbound call; the inbound request context
// can still cancel earlier. Redirects are never followed so a lookup
// is always a single request.
func NewHTTPClient(opts Options, log *logger.Logger) *resty.Client {
	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRedirectPolicy(resty.NoRedirectPolicy()).
		SetHeader("Accept", "application/json")

	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}
	if log != nil {
		client.SetLogger(log.WithComponent("resty"))
	}

	return client
}

// transport is the piece of plumbing both concrete clients share
type transport struct {
	http     *resty.Client
	endpoint Endpoint
	log      *logger.Logger
}

func newTransport(client *resty.Client, endpoint Endpoint, log *logger.Logger) transport {
	if log == nil {
		log = logger.Nop()
	}

	return transport{
		http:     client,
		endpoint: Endpoint{BaseURL: strings.TrimRight(endpoint.BaseURL, "/"), APIKey: endpoint.APIKey},
		log:      log,
	}
}

// url joins the base URL with path
func (t transport) url(path string) string {
	return t.endpoint.BaseURL + path
}

// get performs one GET and returns the raw response
// Transport level failures are already mapped to upstream errors.
func (t transport) get(ctx context.Context, target string) (*resty.Response, error) {
	req := t.http.R().SetContext(ctx)
	if t.endpoint.APIKey != "" {
		req.SetQueryParam("key", t.endpoint.APIKey)
	}

	resp, err := req.Get(target)
	if err != nil {
		if resp != nil && isRedirect(resp.StatusCode()) {
			return nil, models.NewUpstreamError(redirectMessage(resp.StatusCode()), err)
		}
		if isTimeout(err) {
			return nil, models.NewUpstreamError(msgTimeout, err)
		}
		return nil, models.NewUpstreamError(msgRequestFailed, err)
	}

	t.log.Debug().
		Str("url", target).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("Provider responded")

	return resp, nil
}

// decode unmarshals the response body into v
func decode(resp *resty.Response, v interface{}) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return models.NewUpstreamError(msgBadPayload, err)
	}
	return nil
}

// httpStatusError wraps a non-2xx response body so it is logged but never shown to callers
func httpStatusError(resp *resty.Response) error {
	return &statusError{code: resp.StatusCode(), body: strings.TrimSpace(resp.String())}
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return "HTTP " + http.StatusText(e.code)
	}
	return "HTTP " + http.StatusText(e.code) + ": " + e.body
}

// isTimeout reports whether err is a deadline or network timeout
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
