package authsdk_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aussiebroadwan/propauth/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method  string
	path    string
	headers http.Header
	body    map[string]any
}

type recorder struct {
	mu   sync.Mutex
	seen []recorded
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.seen...)
}

func (r *recorder) last() recorded {
	all := r.all()
	return all[len(all)-1]
}

// recordingServer answers every request with status and body and keeps
// what it received.
func recordingServer(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()

	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got := recorded{method: r.Method, path: r.URL.RequestURI(), headers: r.Header.Clone()}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &got.body)
		}
		rec.mu.Lock()
		rec.seen = append(rec.seen, got)
		rec.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestNewSDKClient(t *testing.T) {
	t.Parallel()

	c := authsdk.NewSDKClient("http://localhost:8080/api/")
	require.Equal(t, "http://localhost:8080/api", c.BaseURL)
	require.Zero(t, c.HTTPClient.Timeout)
	require.NotNil(t, c.HTTPClient.Jar)
}

func TestSDKClientOperations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	jwt := `{"token":"tok","type":"Bearer","id":5,"email":"a@b.com","firstName":"A","lastName":"B","roles":["CLIENT"],"twoFactorEnabled":false,"authenticated":true}`
	msg := `{"message":"ok","success":true}`

	t.Run("login", func(t *testing.T) {
		srv, seen := recordingServer(t, http.StatusOK, jwt)
		resp, err := authsdk.NewSDKClient(srv.URL).Login(ctx, authsdk.LoginRequest{Email: "a@b.com", Password: "secret1"})
		require.NoError(t, err)
		require.Equal(t, "tok", resp.Token)
		require.Equal(t, int64(5), resp.ID)

		require.Len(t, seen.all(), 1)
		got := seen.last()
		require.Equal(t, http.MethodPost, got.method)
		require.Equal(t, "/auth/login", got.path)
		require.Equal(t, "application/json", got.headers.Get("Content-Type"))
		require.Equal(t, "application/json", got.headers.Get("Accept"))
		require.Empty(t, got.headers.Get("Authorization"))
		require.Equal(t, map[string]any{"email": "a@b.com", "password": "secret1"}, got.body)
	})

	t.Run("verify two factor", func(t *testing.T) {
		srv, seen := recordingServer(t, http.StatusOK, jwt)
		_, err := authsdk.NewSDKClient(srv.URL).VerifyTwoFactor(ctx, authsdk.TwoFactorVerificationRequest{Token: "pending", Code: "123456"})
		require.NoError(t, err)
		require.Equal(t, "/auth/verify-2fa", seen.last().path)
		require.Equal(t, map[string]any{"token": "pending", "code": "123456"}, seen.last().body)
	})

	t.Run("forgot password", func(t *testing.T) {
		srv, seen := recordingServer(t, http.StatusOK, msg)
		resp, err := authsdk.NewSDKClient(srv.URL).ForgotPassword(ctx, "a@b.com")
		require.NoError(t, err)
		require.True(t, resp.Success)
		require.Equal(t, "/auth/forgot-password", seen.last().path)
		require.Equal(t, map[string]any{"email": "a@b.com"}, seen.last().body)
	})

	t.Run("reset password", func(t *testing.T) {
		srv, seen := recordingServer(t, http.StatusOK, msg)
		_, err := authsdk.NewSDKClient(srv.URL).ResetPassword(ctx, authsdk.ResetPasswordRequest{Token: "rt", NewPassword: "newpass"})
		require.NoError(t, err)
		require.Equal(t, "/auth/reset-password", seen.last().path)
		require.Equal(t, map[string]any{"token": "rt", "newPassword": "newpass"}, seen.last().body)
	})

	t.Run("signup", func(t *testing.T) {
		srv, seen := recordingServer(t, http.StatusCreated, msg)
		resp, err := authsdk.NewSDKClient(srv.URL).Signup(ctx, authsdk.SignupRequest{
			FirstName: "A", LastName: "B", Email: "a@b.com", Password: "secret1", Role: authsdk.RoleAgent,
		})
		require.NoError(t, err)
		require.Equal(t, "ok", resp.Message)
		require.Equal(t, "/auth/signup", seen.last().path)
		require.Equal(t, "AGENT", seen.last().body["role"])
	})
}

func TestSDKClientErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("server message surfaces", func(t *testing.T) {
		srv, _ := recordingServer(t, http.StatusUnauthorized, `{"message":"Invalid email or password","success":false}`)
		_, err := authsdk.NewSDKClient(srv.URL).Login(ctx, authsdk.LoginRequest{Email: "a@b.com", Password: "nope"})

		apiErr, ok := authsdk.AsAPIError(err)
		require.True(t, ok)
		require.Equal(t, authsdk.KindHTTP, apiErr.Kind)
		require.Equal(t, "Invalid email or password", err.Error())
	})

	t.Run("missing message falls back", func(t *testing.T) {
		srv, _ := recordingServer(t, http.StatusInternalServerError, ``)
		_, err := authsdk.NewSDKClient(srv.URL).Signup(ctx, authsdk.SignupRequest{})
		require.EqualError(t, err, "Request failed")
	})

	t.Run("no response", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := authsdk.NewSDKClient(url).ForgotPassword(ctx, "a@b.com")
		apiErr, ok := authsdk.AsAPIError(err)
		require.True(t, ok)
		require.Equal(t, authsdk.KindTransport, apiErr.Kind)
		require.Equal(t, "Network error occurred", apiErr.Message)
	})

	t.Run("bad base url", func(t *testing.T) {
		_, err := authsdk.NewSDKClient("://nope").ForgotPassword(ctx, "a@b.com")
		apiErr, ok := authsdk.AsAPIError(err)
		require.True(t, ok)
		require.Equal(t, authsdk.KindRequest, apiErr.Kind)
		require.Equal(t, "Request failed", apiErr.Message)
	})
}

func TestSDKClientForwardsCookies(t *testing.T) {
	t.Parallel()

	var sawCookie atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("JSESSIONID"); err == nil {
			sawCookie.Store(true)
		}
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "abc", Path: "/"})
		_, _ = io.WriteString(w, `{"message":"ok","success":true}`)
	}))
	t.Cleanup(srv.Close)

	c := authsdk.NewSDKClient(srv.URL)
	_, err := c.ForgotPassword(context.Background(), "a@b.com")
	require.NoError(t, err)
	_, err = c.ForgotPassword(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.True(t, sawCookie.Load())
}
