package authsdk

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/aussiebroadwan/propauth/pkg/idx"
	"github.com/aussiebroadwan/propauth/pkg/sessionstore"
	"github.com/aussiebroadwan/propauth/pkg/slogx"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds every APIClient request.
const DefaultTimeout = 10 * time.Second

// Option configures an APIClient.
type Option func(*APIClient)

// WithHTTPClient replaces the HTTP client. Its timeout and jar are used
// as given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) { c.http = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *APIClient) { c.log = l }
}

// WithNavigator sets where 401 and 403 answers send the user.
func WithNavigator(n Navigator) Option {
	return func(c *APIClient) { c.nav = n }
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *APIClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *APIClient) { c.metrics = m }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *APIClient) { c.timeout = d }
}

// APIClient is the session-aware client. Every request goes through the
// same pipeline: the stored bearer token is attached, tokens found in
// responses are persisted, and failures are classified by status.
//
// It is safe for concurrent use.
type APIClient struct {
	baseURL string
	store   sessionstore.Store

	http    *http.Client
	timeout time.Duration
	log     *slog.Logger
	nav     Navigator
	limiter *rate.Limiter
	metrics *Metrics
}

func NewAPIClient(baseURL string, store sessionstore.Store, opts ...Option) *APIClient {
	c := &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		store:   store,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.log == nil {
		c.log = slogx.Discard()
	}
	if c.nav == nil {
		c.nav = logNavigator{log: c.log}
	}
	if c.http == nil {
		jar, _ := cookiejar.New(nil)
		c.http = &http.Client{Timeout: c.timeout, Jar: jar}
	}
	return c
}

// Store returns the session store backing this client.
func (c *APIClient) Store() sessionstore.Store { return c.store }

// Do sends in as JSON with method to path (relative to the base URL) and
// decodes a 2xx answer into out. Either may be nil. Errors are always
// *APIError.
func (c *APIClient) Do(ctx context.Context, method, path string, in, out any) error {
	start := time.Now()
	route := routePath(path)
	log := c.log

	status, body, err := c.send(ctx, method, path, in, log)
	apiErr := MapError(status, body, err)
	c.metrics.observe(method, metricPath(route), status, apiErr, time.Since(start))

	if apiErr != nil {
		c.handleFailure(ctx, log, route, apiErr)
		return apiErr
	}

	log.Debug("api response", "status", status, "body", slogx.RedactJSON(body))
	c.captureToken(ctx, log, route, body)
	return decodeBody(status, body, out)
}

func (c *APIClient) send(ctx context.Context, method, path string, in any, log *slog.Logger) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, err
		}
	}

	body, err := encodeBody(in)
	if err != nil {
		return 0, nil, err
	}

	reqID := idx.New().String()
	headers := http.Header{}
	headers.Set(slogx.RequestIDHeader, reqID)

	token, err := c.store.Get(ctx, sessionstore.KeyToken)
	switch {
	case err == nil && token != "":
		headers.Set("Authorization", "Bearer "+token)
	case err != nil && !errors.Is(err, sessionstore.ErrNotFound):
		log.Warn("session token unreadable, sending unauthenticated", "error", err)
	}

	log.Debug("api request",
		"req_id", reqID,
		"method", method,
		"path", path,
		"authenticated", headers.Get("Authorization") != "",
		"body", slogx.RedactJSON(body),
	)

	return roundTrip(ctx, c.http, method, c.baseURL+path, body, headers)
}

// handleFailure applies the side effects tied to a failure status.
func (c *APIClient) handleFailure(ctx context.Context, log *slog.Logger, route string, apiErr *APIError) {
	switch apiErr.Kind {
	case KindTransport:
		log.Error("no response received", "path", route, "error", apiErr.Err)
		return
	case KindRequest:
		log.Error("request setup error", "path", route, "error", apiErr.Err)
		return
	}

	switch apiErr.Status {
	case http.StatusUnauthorized:
		if !isAuthPath(route) {
			if err := c.store.Clear(ctx); err != nil {
				log.Error("failed to clear session", "error", err)
			}
			c.nav.Navigate(ctx, RouteLogin)
		}
	case http.StatusForbidden:
		c.nav.Navigate(ctx, RouteUnauthorized)
	case http.StatusNotFound:
		log.Warn("resource not found", "path", route)
	case http.StatusInternalServerError:
		log.Error("server error", "path", route, "body", slogx.RedactJSON(apiErr.Data))
	}

	log.Debug("api error response",
		"status", apiErr.Status,
		"path", route,
		"body", slogx.RedactJSON(apiErr.Data),
	)
}

// captureToken persists a token carried in a successful response.
// Signup and password endpoints never authenticate, and a pending
// two-factor token (authenticated false) is not a session.
func (c *APIClient) captureToken(ctx context.Context, log *slog.Logger, route string, body []byte) {
	if !capturesToken(route) {
		return
	}

	var probe struct {
		Token         string `json:"token"`
		Authenticated *bool  `json:"authenticated"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || probe.Token == "" {
		return
	}
	if probe.Authenticated != nil && !*probe.Authenticated {
		return
	}

	if err := c.store.Set(ctx, sessionstore.KeyToken, probe.Token); err != nil {
		log.Error("failed to persist session token", "error", err)
	}
}

func capturesToken(route string) bool {
	switch route {
	case PathSignup, PathForgotPassword, PathResetPassword:
		return false
	}
	return true
}

func isAuthPath(route string) bool {
	return strings.Contains(route, "/auth/")
}

// routePath drops the query string.
func routePath(path string) string {
	p, _, _ := strings.Cut(path, "?")
	return p
}

// metricPath replaces numeric segments so ids do not become labels.
func metricPath(route string) string {
	segs := strings.Split(route, "/")
	for i, s := range segs {
		if s != "" && strings.Trim(s, "0123456789") == "" {
			segs[i] = ":id"
		}
	}
	return strings.Join(segs, "/")
}
