package authsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// GenerateTwoFactorQRCode returns the otpauth URI for userID, creating a
// secret on the server when the user has none.
func (c *APIClient) GenerateTwoFactorQRCode(ctx context.Context, userID int64) (string, error) {
	var uri string
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/auth/2fa/generate/%d", userID), nil, &uri); err != nil {
		return "", err
	}
	return strings.TrimSpace(uri), nil
}

// EnableTwoFactor turns two-factor on after checking code.
func (c *APIClient) EnableTwoFactor(ctx context.Context, userID int64, code string) (*MessageResponse, error) {
	return c.twoFactorToggle(ctx, "enable", userID, code)
}

// DisableTwoFactor turns two-factor off after checking code.
func (c *APIClient) DisableTwoFactor(ctx context.Context, userID int64, code string) (*MessageResponse, error) {
	return c.twoFactorToggle(ctx, "disable", userID, code)
}

func (c *APIClient) twoFactorToggle(ctx context.Context, action string, userID int64, code string) (*MessageResponse, error) {
	path := fmt.Sprintf("/auth/2fa/%s/%d?%s", action, userID, url.Values{"code": {code}}.Encode())

	var resp MessageResponse
	if err := c.Do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
