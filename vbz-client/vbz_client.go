package vbz_client

import (
	"context"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/F3NN3X/vbz-departures-service/dlog"
	"github.com/pkg/errors"
)

const (
	// DefaultUserAgent identifies this client to the open-transport-data
	// platform, which requires a meaningful User-Agent.
	DefaultUserAgent = "vbz-departures-service/1.0"

	bearerPrefix = "Bearer "

	// minPlausibleKeyLen is the shortest an opentransportdata.swiss key
	// has ever been; anything shorter is almost certainly a paste error.
	minPlausibleKeyLen = 16
)

// VbzClient holds configuration for connecting to and requesting departure
// data from the TRIAS endpoint.
type VbzClient struct {
	Client    *http.Client
	Logger    dlog.Logger
	VbzURL    string
	VbzAPIKey string
	UserAgent string
}

type VbzClientInterface interface {
	Request(ctx context.Context, triasRequest string) ([]byte, error)
	Close()
}

// PlausibleAPIKey reports whether the key looks usable. An implausible key
// is a configuration problem that is surfaced as a warning; the request is
// still attempted.
func PlausibleAPIKey(key string) bool {
	return len(strings.TrimSpace(strings.TrimPrefix(key, bearerPrefix))) >= minPlausibleKeyLen
}

// Request POSTs the TRIAS request body and returns the raw response body.
// Failures are classified: *TransportError when the endpoint could not be
// reached, *APIError on a non-success status. No retry is performed here;
// retrying is the poller's concern.
func (c *VbzClient) Request(ctx context.Context, triasRequest string) ([]byte, error) {
	logger := dlog.OrNop(c.Logger)
	logger.Debugf("VBZ request")

	req, err := c.createVbzHTTPRequest(ctx, triasRequest)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create VBZ HTTP request")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	body, err := c.readVbzHTTPResponse(resp)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read VBZ response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Debugf("VBZ API status %d, body: %s", resp.StatusCode, truncateBody(body))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: truncateBody(body)}
	}

	return body, nil
}

// Close releases idle connections held by the underlying transport. It is
// called exactly once at poller shutdown; the client remains usable if a
// new polling run is started afterwards.
func (c *VbzClient) Close() {
	dlog.OrNop(c.Logger).Debugf("close VBZ client transport")
	c.Client.CloseIdleConnections()
}

func (c *VbzClient) createVbzHTTPRequest(ctx context.Context, triasRequest string) (*http.Request, error) {
	dlog.OrNop(c.Logger).Debugf("createVbzHTTPRequest")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.VbzURL, strings.NewReader(triasRequest))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", bearerToken(c.VbzAPIKey))
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("User-Agent", c.userAgent())

	return req, nil
}

func (c *VbzClient) readVbzHTTPResponse(response *http.Response) (body []byte, err error) {
	logger := dlog.OrNop(c.Logger)
	logger.Debugf("readVbzHTTPResponse")
	defer func() {
		if ferr := response.Body.Close(); ferr != nil {
			err = ferr
			return
		}
		logger.Debugf("closed response body")
	}()

	body, err = ioutil.ReadAll(response.Body)
	return body, err
}

func (c *VbzClient) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return DefaultUserAgent
}

// bearerToken prefixes the key with the authorization scheme unless the
// caller already supplied it prefixed.
func bearerToken(key string) string {
	if strings.HasPrefix(key, bearerPrefix) {
		return key
	}
	return bearerPrefix + key
}
