package mockauth

import (
	"context"
	"log/slog"
	"net/url"
)

// Mailer delivers account emails.
type Mailer interface {
	SendWelcome(ctx context.Context, a Account) error
	SendPasswordReset(ctx context.Context, a Account, resetToken string) error
}

// LogMailer writes emails to the log instead of sending them. The reset
// link is logged in full so a developer can complete the flow by hand.
type LogMailer struct {
	Logger *slog.Logger

	// ResetURL is the page the reset link points at.
	ResetURL string
}

func (m LogMailer) SendWelcome(ctx context.Context, a Account) error {
	m.Logger.InfoContext(ctx, "welcome email", "to", a.Email, "user_id", a.ID)
	return nil
}

func (m LogMailer) SendPasswordReset(ctx context.Context, a Account, resetToken string) error {
	base := m.ResetURL
	if base == "" {
		base = "http://localhost:5173/reset-password"
	}
	link := base + "?" + url.Values{"token": {resetToken}}.Encode()

	m.Logger.InfoContext(ctx, "password reset email", "to", a.Email, "reset_link", link)
	return nil
}
