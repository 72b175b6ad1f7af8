package httpx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/propauth/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "remote addr", want: "192.168.1.1"},
		{name: "forwarded for first hop", headers: map[string]string{"X-Forwarded-For": "203.0.113.1, 192.168.1.1"}, want: "203.0.113.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": " 203.0.113.2 "}, want: "203.0.113.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.168.1.1:12345"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			require.Equal(t, tt.want, httpx.ClientIP(req))
		})
	}
}

func TestFieldKey(t *testing.T) {
	t.Parallel()
	email := httpx.FieldKey("email")

	t.Run("json body is restored", func(t *testing.T) {
		body := `{"email":" Ada@Example.com ","password":"x"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))

		require.Equal(t, "ada@example.com", email(req))

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.JSONEq(t, body, string(rest))
	})

	t.Run("query wins over body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/forgot-password?email=Ada@Example.com",
			strings.NewReader(`{"email":"other@example.com"}`))
		require.Equal(t, "ada@example.com", email(req))
	})

	t.Run("no key", func(t *testing.T) {
		for _, body := range []string{"email=ada", `{"other":"x"}`, `{"email":42}`, ""} {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			require.Empty(t, email(req), body)
		}
	})
}

func TestJoinKeys(t *testing.T) {
	t.Parallel()
	key := httpx.JoinKeys(httpx.ClientIP, httpx.FieldKey("email"))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"ada@example.com"}`))
	req.RemoteAddr = "192.168.1.1:12345"
	require.Equal(t, "192.168.1.1:ada@example.com", key(req))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.RemoteAddr = "192.168.1.1:12345"
	require.Equal(t, "192.168.1.1", key(req))
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	fromIP := func(ip string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":12345"
		return req
	}

	t.Run("blocks over limit", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}
		h := httpx.RateLimit(cfg, httpx.ClientIP)(okHandler())

		for i := range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, fromIP("192.168.1.1"))
			require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, fromIP("192.168.1.1"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
		require.JSONEq(t, `{"message":"`+httpx.MsgTooManyRequests+`","success":false}`, rec.Body.String())
	})

	t.Run("keys are independent", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimit(cfg, httpx.ClientIP)(okHandler())

		for _, ip := range []string{"192.168.1.1", "192.168.1.2"} {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, fromIP(ip))
			require.Equal(t, http.StatusOK, rec.Code, ip)
		}
	})

	t.Run("empty key passes through", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimit(cfg, func(*http.Request) string { return "" })(okHandler())

		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestRateLimitCredentials(t *testing.T) {
	t.Parallel()
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
	h := httpx.RateLimitCredentials(cfg, "email")(okHandler())

	send := func(email string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"`+email+`"}`))
		req.RemoteAddr = "192.168.1.1:12345"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, send("ada@example.com"))
	require.Equal(t, http.StatusOK, send("ADA@example.com"))
	require.Equal(t, http.StatusTooManyRequests, send("ada@example.com"))
	require.Equal(t, http.StatusOK, send("grace@example.com"))
}

func BenchmarkRateLimit(b *testing.B) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 1000000, Window: time.Minute, Burst: 1000}
	h := httpx.RateLimit(cfg, httpx.ClientIP)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"

	for b.Loop() {
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
}
