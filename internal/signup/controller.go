package signup

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/propauth/pkg/authsdk"
	"github.com/aussiebroadwan/propauth/pkg/slogx"
)

const (
	msgRegistrationFailed = "An error occurred during registration."
	msgUnexpected         = "An unexpected error occurred."
)

// Signer submits a signup request. *authsdk.SDKClient satisfies it.
type Signer interface {
	Signup(ctx context.Context, req authsdk.SignupRequest) (*authsdk.MessageResponse, error)
}

// Outcome is how a submission ended.
type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeValidationError
	OutcomeRemoteError
	// OutcomeInFlight means another submission was still running.
	OutcomeInFlight
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeValidationError:
		return "validation_error"
	case OutcomeRemoteError:
		return "remote_error"
	case OutcomeInFlight:
		return "in_flight"
	default:
		return "unknown"
	}
}

// Result reports a submission. Message is the text to display.
type Result struct {
	Outcome  Outcome
	Message  string
	Response *authsdk.MessageResponse
	Err      error
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller drives one signup form. It never touches the session store.
type Controller struct {
	signer    Signer
	onSuccess func()
	log       *slog.Logger

	mu      sync.Mutex
	loading bool
	errMsg  string
}

// NewController returns a controller that calls onSuccess after a
// successful signup. onSuccess may be nil.
func NewController(signer Signer, onSuccess func(), opts ...Option) *Controller {
	c := &Controller{signer: signer, onSuccess: onSuccess}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slogx.Discard()
	}
	return c
}

// Loading reports whether a submission is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Error is the message from the last submission, or "".
func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Submit validates the form and, when it passes, sends exactly one signup
// request. A call made while another is in flight returns OutcomeInFlight
// and sends nothing.
func (c *Controller) Submit(ctx context.Context, form FormState) Result {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return Result{Outcome: OutcomeInFlight}
	}
	c.errMsg = ""

	if err := Validate(form); err != nil {
		c.errMsg = err.Error()
		c.mu.Unlock()
		c.log.Debug("signup rejected by validation", "reason", err.Error())
		return Result{Outcome: OutcomeValidationError, Message: err.Error(), Err: err}
	}

	c.loading = true
	c.mu.Unlock()

	req := form.Request()
	c.log.Debug("signup submitting", "email", req.Email, "role", req.Role)

	resp, err := c.signer.Signup(ctx, req)

	c.mu.Lock()
	c.loading = false
	if err != nil {
		c.errMsg = failureMessage(err)
	}
	msg := c.errMsg
	c.mu.Unlock()

	if err != nil {
		c.log.Info("signup failed", "email", req.Email, "error", msg)
		return Result{Outcome: OutcomeRemoteError, Message: msg, Err: err}
	}

	c.log.Info("signup succeeded", "email", req.Email)
	if c.onSuccess != nil {
		c.onSuccess()
	}
	return Result{Outcome: OutcomeSuccess, Response: resp}
}

// failureMessage picks the text shown after a failed signup.
func failureMessage(err error) string {
	var apiErr *authsdk.APIError
	if !errors.As(err, &apiErr) {
		return msgUnexpected
	}
	if msg := apiErr.ServerMessage(); msg != "" {
		return msg
	}
	if apiErr.Kind == authsdk.KindHTTP {
		return msgRegistrationFailed
	}
	return msgUnexpected
}
