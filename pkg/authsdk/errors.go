package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an APIError.
type Kind int

const (
	// KindValidation is a client-side validation failure. Nothing was sent.
	KindValidation Kind = iota + 1
	// KindHTTP means the server answered with a non-2xx status.
	KindHTTP
	// KindTransport means the request was sent but no response arrived.
	KindTransport
	// KindRequest means the request could not be built.
	KindRequest
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindHTTP:
		return "http"
	case KindTransport:
		return "transport"
	case KindRequest:
		return "request"
	default:
		return "unknown"
	}
}

const (
	msgRequestFailed = "Request failed"
	msgNetworkError  = "Network error occurred"
)

// ErrBuildRequest marks failures that happen before anything is sent.
var ErrBuildRequest = errors.New("authsdk: build request")

// APIError is the single error shape returned by every client operation.
type APIError struct {
	Kind    Kind
	Message string
	// Status is the HTTP status for KindHTTP, zero otherwise.
	Status int
	// Data is the raw response body when it was valid JSON.
	Data json.RawMessage
	// Err is the underlying cause, if any.
	Err error

	serverMessage string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// ServerMessage is the message carried in the response body, or "".
func (e *APIError) ServerMessage() string {
	return e.serverMessage
}

// NewValidationError returns a KindValidation error with msg.
func NewValidationError(msg string) *APIError {
	return &APIError{Kind: KindValidation, Message: msg}
}

// MapError turns the outcome of one HTTP exchange into an *APIError. It
// returns nil for a 2xx status with no error. status is zero when no
// response was received.
func MapError(status int, body []byte, err error) *APIError {
	if status == 0 {
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrBuildRequest) {
			return &APIError{Kind: KindRequest, Message: msgRequestFailed, Err: err}
		}
		return &APIError{Kind: KindTransport, Message: msgNetworkError, Err: err}
	}

	if status >= 200 && status < 300 && err == nil {
		return nil
	}

	apiErr := &APIError{
		Kind:    KindHTTP,
		Message: msgRequestFailed,
		Status:  status,
		Err:     err,
	}
	if json.Valid(body) {
		apiErr.Data = json.RawMessage(body)

		var envelope struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Message != "" {
			apiErr.serverMessage = envelope.Message
			apiErr.Message = envelope.Message
		}
	}
	if apiErr.Err == nil {
		apiErr.Err = fmt.Errorf("HTTP %d: %s", status, http.StatusText(status))
	}
	return apiErr
}

// AsAPIError extracts an *APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is an HTTP 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// IsForbidden reports whether err is an HTTP 403.
func IsForbidden(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusForbidden
}
