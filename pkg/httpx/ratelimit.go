package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/propauth/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig allows RequestsPerWindow requests per Window for each
// key, with bursts up to Burst.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// CredentialLimit guards the credential endpoints: 10 requests per minute
// per client and email.
var CredentialLimit = RateLimitConfig{
	RequestsPerWindow: 10,
	Window:            time.Minute,
	Burst:             10,
}

// MsgTooManyRequests is the body message of a throttled request.
const MsgTooManyRequests = "Too many requests. Please try again later."

// KeyFunc groups requests for throttling. An empty key is not throttled.
type KeyFunc func(*http.Request) string

// ClientIP is the first X-Forwarded-For hop, then X-Real-IP, then the
// remote address without port.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// FieldKey reads field from the query string, falling back to a top-level
// string in a JSON body. The body is put back for the handler. Values are
// trimmed and lowercased so "Ada@x" and "ada@x " share a bucket.
func FieldKey(field string) KeyFunc {
	return func(r *http.Request) string {
		if v := r.URL.Query().Get(field); v != "" {
			return normalizeKey(v)
		}
		if r.Body == nil || r.Body == http.NoBody {
			return ""
		}

		raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(raw))
		if err != nil {
			return ""
		}

		var fields map[string]any
		if json.Unmarshal(raw, &fields) != nil {
			return ""
		}
		v, _ := fields[field].(string)
		return normalizeKey(v)
	}
}

func normalizeKey(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// JoinKeys concatenates the non-empty keys of fns with ":".
func JoinKeys(fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if k := fn(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, ":")
	}
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// buckets holds one limiter per key. Buckets idle for longer than ttl are
// swept on the next lookup after ttl has passed.
type buckets struct {
	mu        sync.Mutex
	byKey     map[string]*bucket
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
}

func newBuckets(cfg RateLimitConfig) *buckets {
	ttl := max(cfg.Window, time.Minute)
	return &buckets{
		byKey:     make(map[string]*bucket),
		limit:     rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:     max(cfg.Burst, 1),
		ttl:       ttl,
		lastSweep: time.Now(),
	}
}

func (b *buckets) get(key string, now time.Time) *rate.Limiter {
	b.mu.Lock()
	defer b.mu.Unlock()

	if now.Sub(b.lastSweep) >= b.ttl {
		for k, bk := range b.byKey {
			if now.Sub(bk.seen) >= b.ttl {
				delete(b.byKey, k)
			}
		}
		b.lastSweep = now
	}

	bk, ok := b.byKey[key]
	if !ok {
		bk = &bucket{lim: rate.NewLimiter(b.limit, b.burst)}
		b.byKey[key] = bk
	}
	bk.seen = now
	return bk.lim
}

// RateLimit throttles requests per key. Rejected requests get 429 with
// Retry-After in whole seconds.
func RateLimit(cfg RateLimitConfig, key KeyFunc) Middleware {
	b := newBuckets(cfg)
	limitHeader := strconv.Itoa(cfg.RequestsPerWindow)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				slogx.FromContext(r.Context()).Warn("rate limit: no key, request not throttled", "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			now := time.Now()
			lim := b.get(k, now)
			if lim.AllowN(now, 1) {
				next.ServeHTTP(w, r)
				return
			}

			res := lim.ReserveN(now, 1)
			wait := res.DelayFrom(now)
			res.CancelAt(now)
			retryAfter := max(int(wait.Round(time.Second).Seconds()), 1)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", limitHeader)
			w.Header().Set("X-RateLimit-Window", cfg.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"path", r.URL.Path,
				"retry_after", retryAfter,
			)
			WriteMessage(w, http.StatusTooManyRequests, MsgTooManyRequests)
		})
	}
}

// RateLimitCredentials throttles per client IP and the given credential
// field, e.g. login attempts per IP and email.
func RateLimitCredentials(cfg RateLimitConfig, field string) Middleware {
	return RateLimit(cfg, JoinKeys(ClientIP, FieldKey(field)))
}
