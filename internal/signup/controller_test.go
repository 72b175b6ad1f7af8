package signup_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aussiebroadwan/propauth/internal/signup"
	"github.com/aussiebroadwan/propauth/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

type fakeSigner struct {
	mu    sync.Mutex
	calls []authsdk.SignupRequest
	resp  *authsdk.MessageResponse
	err   error
}

func (s *fakeSigner) Signup(_ context.Context, req authsdk.SignupRequest) (*authsdk.MessageResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	return s.resp, s.err
}

func (s *fakeSigner) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestSubmitValidationMakesNoCall(t *testing.T) {
	t.Parallel()

	signer := &fakeSigner{}
	var succeeded bool
	c := signup.NewController(signer, func() { succeeded = true })

	f := validForm()
	f.ConfirmPassword = "other"

	res := c.Submit(context.Background(), f)
	require.Equal(t, signup.OutcomeValidationError, res.Outcome)
	require.Equal(t, "Passwords do not match", res.Message)
	require.Equal(t, "Passwords do not match", c.Error())
	require.False(t, c.Loading())
	require.Zero(t, signer.Calls())
	require.False(t, succeeded)
}

func TestSubmitSuccess(t *testing.T) {
	t.Parallel()

	signer := &fakeSigner{resp: &authsdk.MessageResponse{Message: "User registered successfully", Success: true}}
	var successes int
	c := signup.NewController(signer, func() { successes++ })

	// a previous failure is cleared by the next submission
	bad := validForm()
	bad.Email = "nope"
	c.Submit(context.Background(), bad)
	require.NotEmpty(t, c.Error())

	res := c.Submit(context.Background(), validForm())
	require.Equal(t, signup.OutcomeSuccess, res.Outcome)
	require.Equal(t, "User registered successfully", res.Response.Message)
	require.Empty(t, c.Error())
	require.False(t, c.Loading())
	require.Equal(t, 1, successes)
	require.Equal(t, 1, signer.Calls())
}

func TestSubmitLoadingDuringCall(t *testing.T) {
	t.Parallel()

	var c *signup.Controller
	var sawLoading bool
	signer := signerFunc(func(context.Context, authsdk.SignupRequest) (*authsdk.MessageResponse, error) {
		sawLoading = c.Loading()
		return &authsdk.MessageResponse{Success: true}, nil
	})
	c = signup.NewController(signer, func() {
		require.False(t, c.Loading())
	})

	require.Equal(t, signup.OutcomeSuccess, c.Submit(context.Background(), validForm()).Outcome)
	require.True(t, sawLoading)
}

type signerFunc func(context.Context, authsdk.SignupRequest) (*authsdk.MessageResponse, error)

func (f signerFunc) Signup(ctx context.Context, req authsdk.SignupRequest) (*authsdk.MessageResponse, error) {
	return f(ctx, req)
}

func TestSubmitSendsTrimmedPayloadOnce(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	var mu sync.Mutex
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		_ = json.Unmarshal(raw, &payload)
		mu.Unlock()
		_, _ = io.WriteString(w, `{"message":"User registered successfully","success":true}`)
	}))
	t.Cleanup(srv.Close)

	c := signup.NewController(authsdk.NewSDKClient(srv.URL), nil)

	f := validForm()
	f.FirstName = " A "
	f.LastName = "B "
	f.Email = " a@b.com"
	f.Phone = " 123 "
	f.Address = " Somewhere "

	res := c.Submit(context.Background(), f)
	require.Equal(t, signup.OutcomeSuccess, res.Outcome)
	require.EqualValues(t, 1, hits.Load())

	mu.Lock()
	defer mu.Unlock()
	require.NotContains(t, payload, "confirmPassword")
	require.Equal(t, map[string]any{
		"firstName":       "A",
		"lastName":        "B",
		"email":           "a@b.com",
		"password":        "secret1",
		"phone":           "123",
		"address":         "Somewhere",
		"role":            "CLIENT",
		"enableTwoFactor": false,
	}, payload)
}

func TestSubmitRemoteErrors(t *testing.T) {
	t.Parallel()

	t.Run("server message is shown", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"Email already exists","success":false}`)
		}))
		t.Cleanup(srv.Close)

		c := signup.NewController(authsdk.NewSDKClient(srv.URL), func() { t.Fatal("unexpected success") })
		res := c.Submit(context.Background(), validForm())

		require.Equal(t, signup.OutcomeRemoteError, res.Outcome)
		require.Equal(t, "Email already exists", res.Message)
		require.Equal(t, "Email already exists", c.Error())
		require.False(t, c.Loading())
	})

	t.Run("http error without message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)

		c := signup.NewController(authsdk.NewSDKClient(srv.URL), nil)
		res := c.Submit(context.Background(), validForm())
		require.Equal(t, "An error occurred during registration.", res.Message)
	})

	t.Run("network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := signup.NewController(authsdk.NewSDKClient(url), nil)
		res := c.Submit(context.Background(), validForm())

		require.Equal(t, signup.OutcomeRemoteError, res.Outcome)
		require.Equal(t, "An unexpected error occurred.", res.Message)
		require.False(t, c.Loading())
	})

	t.Run("non api error", func(t *testing.T) {
		c := signup.NewController(&fakeSigner{err: errors.New("boom")}, nil)
		res := c.Submit(context.Background(), validForm())
		require.Equal(t, "An unexpected error occurred.", res.Message)
	})
}

func TestSubmitInFlight(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	signer := signerFunc(func(context.Context, authsdk.SignupRequest) (*authsdk.MessageResponse, error) {
		calls.Add(1)
		close(entered)
		<-release
		return &authsdk.MessageResponse{Success: true}, nil
	})
	c := signup.NewController(signer, nil)

	done := make(chan signup.Result)
	go func() { done <- c.Submit(context.Background(), validForm()) }()
	<-entered

	require.True(t, c.Loading())
	second := c.Submit(context.Background(), validForm())
	require.Equal(t, signup.OutcomeInFlight, second.Outcome)

	close(release)
	require.Equal(t, signup.OutcomeSuccess, (<-done).Outcome)
	require.EqualValues(t, 1, calls.Load())
	require.False(t, c.Loading())
}
