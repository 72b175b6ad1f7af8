package authsdk

import (
	"fmt"
	"strings"
)

// ============================================================================
// Roles
// ============================================================================

// Role is the account type chosen at signup.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleAgent  Role = "AGENT"
	RoleClient Role = "CLIENT"
)

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleAgent, RoleClient:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }

// ============================================================================
// Request Types
// ============================================================================

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TwoFactorVerificationRequest exchanges a pending login token and a TOTP
// code for an authenticated token.
type TwoFactorVerificationRequest struct {
	Token string `json:"token"`
	Code  string `json:"code"`
}

// ForgotPasswordRequest is the body of POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest sets a new password using a reset token. Servers
// also accept an email in place of the token.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
	Email       string `json:"email,omitempty"`
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	Role            Role   `json:"role"`
	EnableTwoFactor bool   `json:"enableTwoFactor"`
}

// ============================================================================
// Response Types
// ============================================================================

// JwtResponse is returned by login and two-factor verification.
//
// When the account has two-factor enabled, login answers with
// Authenticated false and a pending token that must be passed to
// VerifyTwoFactor.
type JwtResponse struct {
	Token              string   `json:"token"`
	Type               string   `json:"type"`
	ID                 int64    `json:"id"`
	Email              string   `json:"email"`
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	Roles              []string `json:"roles"`
	TwoFactorEnabled   bool     `json:"twoFactorEnabled"`
	TwoFactorQrCodeURI string   `json:"twoFactorQrCodeUri,omitempty"`
	Authenticated      bool     `json:"authenticated"`
}

// StoredUser returns the record cached in the session after login.
func (r *JwtResponse) StoredUser() StoredUser {
	return StoredUser{
		ID:               r.ID,
		Email:            r.Email,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Roles:            append([]string(nil), r.Roles...),
		TwoFactorEnabled: r.TwoFactorEnabled,
	}
}

// MessageResponse is the {message, success} envelope.
type MessageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ErrorResponse has the same shape as MessageResponse with Success false.
type ErrorResponse = MessageResponse

// User is the profile record served under /client/profile.
type User struct {
	ID               int64  `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
	Role             Role   `json:"role"`
	TwoFactorEnabled bool   `json:"twoFactorEnabled"`
}

// StoredUser is persisted under the "user" session key.
type StoredUser struct {
	ID               int64    `json:"id"`
	Email            string   `json:"email"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Roles            []string `json:"roles"`
	TwoFactorEnabled bool     `json:"twoFactorEnabled"`
}
