package authsdk

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/propauth/pkg/jwtx"
)

// Claims is the readable part of the session token.
type Claims struct {
	Subject   string
	Email     string
	Roles     []string
	ExpiresAt time.Time
	// Pending is set on tokens issued before the second factor.
	Pending bool
}

// Expired reports whether the token expired before now.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// ParseClaims decodes a JWT without verifying its signature.
func ParseClaims(token string) (*Claims, error) {
	tc, err := jwtx.ParseUnverified(token)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	c := &Claims{
		Subject: tc.Subject,
		Email:   tc.Email,
		Roles:   tc.Roles,
		Pending: tc.TwoFactorPending,
	}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	return c, nil
}
