package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultSessionTTL is the lifetime of an authenticated session token.
	DefaultSessionTTL = 24 * time.Hour

	// DefaultPendingTTL is the lifetime of a token waiting for its second
	// factor.
	DefaultPendingTTL = 5 * time.Minute
)

// Claims are the session token claims shared by the auth backend and
// its clients.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`

	// Roles are authority names, e.g. "ROLE_CLIENT".
	Roles []string `json:"roles,omitempty"`

	// TwoFactorPending marks a token issued after the password check but
	// before the TOTP check. It does not authenticate requests.
	TwoFactorPending bool `json:"two_factor_pending,omitempty"`
}

// NewClaims builds minimally-correct claims.
func NewClaims(
	subject, email string,
	roles []string,
	pending bool,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email:            email,
		Roles:            roles,
		TwoFactorPending: pending,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasRole reports whether role is among the claimed roles.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiryWithLeeway checks exp and nbf against now with a small grace
// period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}

// ParseUnverified decodes a token without checking its signature. Only
// use it to read claims that something else has verified.
func ParseUnverified(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, ErrMalformed
	}
	return claims, nil
}
