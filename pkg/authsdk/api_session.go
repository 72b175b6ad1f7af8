package authsdk

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/propauth/pkg/sessionstore"
)

// Login authenticates and, when the account needs no second factor,
// stores the token and the user record in the session.
func (c *APIClient) Login(ctx context.Context, req LoginRequest) (*JwtResponse, error) {
	var resp JwtResponse
	if err := c.Do(ctx, http.MethodPost, PathLogin, req, &resp); err != nil {
		return nil, err
	}
	return &resp, c.rememberUser(ctx, &resp)
}

// VerifyTwoFactor completes a pending login and stores the session.
func (c *APIClient) VerifyTwoFactor(ctx context.Context, req TwoFactorVerificationRequest) (*JwtResponse, error) {
	var resp JwtResponse
	if err := c.Do(ctx, http.MethodPost, PathVerifyTwoFA, req, &resp); err != nil {
		return nil, err
	}
	return &resp, c.rememberUser(ctx, &resp)
}

func (c *APIClient) rememberUser(ctx context.Context, resp *JwtResponse) error {
	if !resp.Authenticated || resp.Token == "" {
		return nil
	}
	return sessionstore.SetJSON(ctx, c.store, sessionstore.KeyUser, resp.StoredUser())
}

// Logout forgets the token and the user record.
func (c *APIClient) Logout(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// CurrentUser returns the cached user record, or sessionstore.ErrNotFound
// when nobody is logged in.
func (c *APIClient) CurrentUser(ctx context.Context) (*StoredUser, error) {
	var u StoredUser
	if err := sessionstore.GetJSON(ctx, c.store, sessionstore.KeyUser, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Claims decodes the stored token. The signature is not checked; only
// the server can do that.
func (c *APIClient) Claims(ctx context.Context) (*Claims, error) {
	token, err := c.store.Get(ctx, sessionstore.KeyToken)
	if err != nil {
		return nil, err
	}
	return ParseClaims(token)
}
