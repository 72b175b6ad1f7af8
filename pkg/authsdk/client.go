package authsdk

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/aussiebroadwan/propauth/pkg/slogx"
)

// SDKClient calls the five public authentication endpoints. It holds no
// session state and never touches a session store.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Logger receives debug lines with credential fields redacted.
	// Nil discards them.
	Logger *slog.Logger
}

// NewSDKClient creates a client for baseURL. The HTTP client has no
// timeout of its own; bound calls with the context. Cookies set by the
// server are kept and sent back.
func NewSDKClient(baseURL string) *SDKClient {
	jar, _ := cookiejar.New(nil)
	return &SDKClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Jar: jar},
	}
}

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

func (c *SDKClient) logger() *slog.Logger {
	if c.Logger == nil {
		return slogx.Discard()
	}
	return c.Logger
}

// post sends in as JSON to path and decodes a 2xx answer into out.
func (c *SDKClient) post(ctx context.Context, path string, in, out any) error {
	log := c.logger().With("method", http.MethodPost, "path", path)

	body, err := encodeBody(in)
	if err != nil {
		return MapError(0, nil, err)
	}
	log.Debug("auth request", "body", slogx.RedactJSON(body))

	status, respBody, err := roundTrip(ctx, c.HTTPClient, http.MethodPost, c.url(path), body, nil)
	if apiErr := MapError(status, respBody, err); apiErr != nil {
		log.Debug("auth request failed",
			"kind", apiErr.Kind.String(),
			"status", apiErr.Status,
			"error", apiErr.Err,
		)
		return apiErr
	}

	log.Debug("auth response", "status", status, "body", slogx.RedactJSON(respBody))
	return decodeBody(status, respBody, out)
}
