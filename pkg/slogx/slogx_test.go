package slogx_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/propauth/pkg/idx"
	"github.com/aussiebroadwan/propauth/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, slogx.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, slogx.ParseLevel("warning"))
	require.Equal(t, slog.LevelError, slogx.ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, slogx.ParseLevel("nonsense"))
}

func TestNewRedactsCredentialAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "test", Level: "debug", Format: "json", Output: &buf})

	logger.Debug("signup", "email", "a@b.com", "password", "secret1", "newPassword", "hunter22")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "a@b.com", line["email"])
	require.Equal(t, slogx.Redacted, line["password"])
	require.Equal(t, slogx.Redacted, line["newPassword"])
	require.NotContains(t, buf.String(), "secret1")
	require.NotContains(t, buf.String(), "hunter22")
}

func TestRedactJSON(t *testing.T) {
	t.Parallel()

	t.Run("nested fields", func(t *testing.T) {
		in := []byte(`{"email":"a@b.com","password":"x","nested":{"confirm_password":"y","list":[{"token":"t"}]}}`)
		out := slogx.RedactJSON(in)

		var got map[string]any
		require.NoError(t, json.Unmarshal(out, &got))
		require.Equal(t, "a@b.com", got["email"])
		require.Equal(t, slogx.Redacted, got["password"])

		nested := got["nested"].(map[string]any)
		require.Equal(t, slogx.Redacted, nested["confirm_password"])
		item := nested["list"].([]any)[0].(map[string]any)
		require.Equal(t, slogx.Redacted, item["token"])
	})

	t.Run("non json body", func(t *testing.T) {
		out := slogx.RedactJSON([]byte("password=hunter2"))
		require.NotContains(t, string(out), "hunter2")
	})

	t.Run("empty body", func(t *testing.T) {
		require.Nil(t, slogx.RedactJSON(nil))
	})
}

func TestHTTPMiddleware(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var seen string
	h := slogx.HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotNil(t, slogx.FromContext(r.Context()))
		seen = w.Header().Get(slogx.RequestIDHeader)
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("keeps client request id", func(t *testing.T) {
		id := idx.New().String()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.Header.Set(slogx.RequestIDHeader, id)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusTeapot, rec.Code)
		require.Equal(t, id, seen)
		require.Contains(t, buf.String(), id)
	})

	t.Run("replaces invalid request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(slogx.RequestIDHeader, "bogus")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		_, err := idx.Parse(rec.Header().Get(slogx.RequestIDHeader))
		require.NoError(t, err)
	})
}
