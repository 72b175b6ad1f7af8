package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

const (
	PathProfile        = "/client/profile"
	PathChangePassword = "/client/change-password"
)

// GetProfile returns the logged-in user's profile.
func (c *APIClient) GetProfile(ctx context.Context) (*User, error) {
	var u User
	if err := c.Do(ctx, http.MethodGet, PathProfile, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile replaces the editable profile fields.
func (c *APIClient) UpdateProfile(ctx context.Context, u User) (*User, error) {
	var out User
	if err := c.Do(ctx, http.MethodPut, PathProfile, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword sets a new password after checking the current one.
func (c *APIClient) ChangePassword(ctx context.Context, current, next string) (*MessageResponse, error) {
	q := url.Values{"currentPassword": {current}, "newPassword": {next}}

	var resp MessageResponse
	if err := c.Do(ctx, http.MethodPut, PathChangePassword+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
