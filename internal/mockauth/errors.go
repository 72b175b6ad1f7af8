package mockauth

import (
	"fmt"
	"net/http"
)

// Error is a failure with the status and message the client should see.
type Error struct {
	Status  int
	Message string
	Details string
}

func (e *Error) Error() string { return fmt.Sprintf("%d %s", e.Status, e.Message) }

func badRequest(msg string) *Error { return &Error{Status: http.StatusBadRequest, Message: msg} }

func notFound(msg string) *Error { return &Error{Status: http.StatusNotFound, Message: msg} }

// Messages shared with the client-side flows.
const (
	msgRegistered       = "User registered successfully"
	msgEmailTaken       = "Email is already taken"
	msgBadCredentials   = "Invalid email or password"
	msgInvalidToken     = "Invalid token"
	msgInvalidCode      = "Invalid authentication code"
	msgResetSent        = "Password reset email sent"
	msgResetDone        = "Password has been reset successfully"
	msgResetExpired     = "Password reset token has expired"
	msgResetUnknown     = "Invalid or expired password reset token"
	msgResetMissing     = "Email or token must be provided"
	msgTwoFAEnabled     = "Two-factor authentication enabled successfully"
	msgTwoFADisabled    = "Two-factor authentication disabled successfully"
	msgTwoFAWasEnabled  = "Two-factor authentication is already enabled"
	msgTwoFAWasDisabled = "Two-factor authentication is already disabled"
	msgPasswordChanged  = "Password changed successfully"
	msgWrongPassword    = "Current password is incorrect"
	msgValidation       = "Validation Error"
	msgForbidden        = "You don't have permission to access this resource"
	msgNotFound         = "Resource not found"
	msgInternal         = "An internal server error occurred"
)

var (
	errBadCredentials = &Error{Status: http.StatusUnauthorized, Message: msgBadCredentials}
	errForbidden      = &Error{Status: http.StatusForbidden, Message: msgForbidden}
)
