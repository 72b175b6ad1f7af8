package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/aussiebroadwan/propauth/internal/signup"
	"github.com/aussiebroadwan/propauth/pkg/authsdk"
	"github.com/aussiebroadwan/propauth/pkg/sessionstore"
)

// ErrUsage is returned for unknown commands and bad flags.
var ErrUsage = errors.New("usage error")

type command struct {
	summary string
	run     func(app *Application, ctx context.Context, fs *flag.FlagSet, args []string) error
}

var commands = map[string]command{
	"signup":          {"register a new account", (*Application).cmdSignup},
	"login":           {"log in and store the session", (*Application).cmdLogin},
	"verify-2fa":      {"complete a pending login with a TOTP code", (*Application).cmdVerify},
	"forgot-password": {"request a password reset email", (*Application).cmdForgot},
	"reset-password":  {"set a new password with a reset token", (*Application).cmdReset},
	"logout":          {"forget the stored session", (*Application).cmdLogout},
	"whoami":          {"show the logged-in user", (*Application).cmdWhoami},
	"2fa-qr":          {"print the two-factor enrollment URI (needs a full session, not a pending login)", (*Application).cmdTwoFactorURI},
	"2fa-enable":      {"turn two-factor on", (*Application).cmdTwoFactorEnable},
	"2fa-disable":     {"turn two-factor off", (*Application).cmdTwoFactorDisable},
	"profile":         {"show or update the profile", (*Application).cmdProfile},
	"change-password": {"change the account password", (*Application).cmdChangePassword},
}

// Usage writes the command list to w.
func Usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: propauth <command> [flags]")
	fmt.Fprintln(w)
	for _, name := range names {
		fmt.Fprintf(w, "  %-16s %s\n", name, commands[name].summary)
	}
}

// Run executes one command. A failure is printed to the output before it
// is returned.
func (app *Application) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		Usage(app.out)
		return ErrUsage
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(app.out, "unknown command %q\n\n", args[0])
		Usage(app.out)
		return ErrUsage
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(app.out)

	err := cmd.run(app, ctx, fs, args[1:])
	if err != nil {
		fmt.Fprintln(app.out, "Error:", errorText(err))
	}
	return err
}

// errorText is the line shown for a failed command.
func errorText(err error) string {
	if apiErr, ok := authsdk.AsAPIError(err); ok {
		return apiErr.Message
	}
	return err.Error()
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

func (app *Application) cmdSignup(ctx context.Context, fs *flag.FlagSet, args []string) error {
	values := map[string]*string{
		signup.FieldFirstName:       fs.String("first", "", "first name"),
		signup.FieldLastName:        fs.String("last", "", "last name"),
		signup.FieldEmail:           fs.String("email", "", "email address"),
		signup.FieldPassword:        fs.String("password", "", "password"),
		signup.FieldConfirmPassword: fs.String("confirm", "", "password again"),
		signup.FieldPhone:           fs.String("phone", "", "phone number (optional)"),
		signup.FieldAddress:         fs.String("address", "", "address (optional)"),
		signup.FieldRole:            fs.String("role", authsdk.RoleClient.String(), "ADMIN, AGENT or CLIENT"),
	}
	twoFactor := fs.Bool("2fa", false, "enable two-factor authentication")
	if err := parse(fs, args); err != nil {
		return err
	}

	form := signup.NewFormState()
	for field, v := range values {
		if err := form.Set(field, *v); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
	}
	form.EnableTwoFactor = *twoFactor

	toLogin := false
	ctrl := signup.NewController(app.sdk, func() { toLogin = true }, signup.WithLogger(app.logger))

	res := ctrl.Submit(ctx, form)
	switch res.Outcome {
	case signup.OutcomeSuccess:
		fmt.Fprintln(app.out, res.Response.Message)
		if toLogin {
			fmt.Fprintf(app.out, "Continue with: propauth login -email %s\n", form.Request().Email)
		}
		return nil
	case signup.OutcomeValidationError:
		return res.Err
	default:
		// res.Message is the text chosen for display, not the raw error.
		return errors.New(res.Message)
	}
}

func (app *Application) cmdLogin(ctx context.Context, fs *flag.FlagSet, args []string) error {
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	code := fs.String("code", "", "TOTP code, when two-factor is enabled")
	if err := parse(fs, args); err != nil {
		return err
	}

	resp, err := app.api.Login(ctx, authsdk.LoginRequest{Email: strings.TrimSpace(*email), Password: *password})
	if err != nil {
		return err
	}

	if !resp.Authenticated {
		if *code == "" {
			fmt.Fprintln(app.out, "Two-factor authentication required.")
			fmt.Fprintf(app.out, "Run: propauth verify-2fa -token %s -code <code>\n", resp.Token)
			return nil
		}
		resp, err = app.api.VerifyTwoFactor(ctx, authsdk.TwoFactorVerificationRequest{Token: resp.Token, Code: *code})
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(app.out, "Logged in as %s %s <%s>\n", resp.FirstName, resp.LastName, resp.Email)
	return nil
}

func (app *Application) cmdVerify(ctx context.Context, fs *flag.FlagSet, args []string) error {
	token := fs.String("token", "", "pending token printed by login")
	code := fs.String("code", "", "TOTP code")
	if err := parse(fs, args); err != nil {
		return err
	}

	resp, err := app.api.VerifyTwoFactor(ctx, authsdk.TwoFactorVerificationRequest{Token: *token, Code: *code})
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Logged in as %s %s <%s>\n", resp.FirstName, resp.LastName, resp.Email)
	return nil
}

func (app *Application) cmdForgot(ctx context.Context, fs *flag.FlagSet, args []string) error {
	email := fs.String("email", "", "email address")
	if err := parse(fs, args); err != nil {
		return err
	}

	resp, err := app.sdk.ForgotPassword(ctx, strings.TrimSpace(*email))
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out, resp.Message)
	return nil
}

func (app *Application) cmdReset(ctx context.Context, fs *flag.FlagSet, args []string) error {
	token := fs.String("token", "", "reset token from the email")
	email := fs.String("email", "", "email address, instead of a token")
	password := fs.String("password", "", "new password")
	if err := parse(fs, args); err != nil {
		return err
	}

	resp, err := app.sdk.ResetPassword(ctx, authsdk.ResetPasswordRequest{
		Token:       strings.TrimSpace(*token),
		Email:       strings.TrimSpace(*email),
		NewPassword: *password,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out, resp.Message)
	return nil
}

func (app *Application) cmdLogout(ctx context.Context, fs *flag.FlagSet, args []string) error {
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := app.api.Logout(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Fprintln(app.out, "Logged out.")
	return nil
}

func (app *Application) cmdWhoami(ctx context.Context, fs *flag.FlagSet, args []string) error {
	if err := parse(fs, args); err != nil {
		return err
	}

	user, err := app.currentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "%s %s <%s> (id %d, roles %s)\n",
		user.FirstName, user.LastName, user.Email, user.ID, strings.Join(user.Roles, ","))

	if claims, err := app.api.Claims(ctx); err == nil && !claims.ExpiresAt.IsZero() {
		state := "valid"
		if claims.Expired(time.Now()) {
			state = "expired"
		}
		fmt.Fprintf(app.out, "Session %s until %s\n", state, claims.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

func (app *Application) cmdTwoFactorURI(ctx context.Context, fs *flag.FlagSet, args []string) error {
	if err := parse(fs, args); err != nil {
		return err
	}
	user, err := app.currentUser(ctx)
	if err != nil {
		return err
	}

	uri, err := app.api.GenerateTwoFactorQRCode(ctx, user.ID)
	if err != nil {
		return err
	}

	key, err := authsdk.ParseTwoFactorURI(uri)
	if err != nil {
		return fmt.Errorf("server sent an unusable enrollment URI: %w", err)
	}
	fmt.Fprintln(app.out, key.URI)
	fmt.Fprintf(app.out, "Secret: %s (%s, %d digits, %ds)\n", key.Secret, key.Issuer, key.Digits, key.Period)
	return nil
}

func (app *Application) cmdTwoFactorEnable(ctx context.Context, fs *flag.FlagSet, args []string) error {
	return app.twoFactorToggle(ctx, fs, args, app.api.EnableTwoFactor)
}

func (app *Application) cmdTwoFactorDisable(ctx context.Context, fs *flag.FlagSet, args []string) error {
	return app.twoFactorToggle(ctx, fs, args, app.api.DisableTwoFactor)
}

func (app *Application) twoFactorToggle(
	ctx context.Context,
	fs *flag.FlagSet,
	args []string,
	toggle func(context.Context, int64, string) (*authsdk.MessageResponse, error),
) error {
	code := fs.String("code", "", "TOTP code")
	if err := parse(fs, args); err != nil {
		return err
	}
	user, err := app.currentUser(ctx)
	if err != nil {
		return err
	}

	resp, err := toggle(ctx, user.ID, *code)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out, resp.Message)
	return nil
}

func (app *Application) cmdProfile(ctx context.Context, fs *flag.FlagSet, args []string) error {
	first := fs.String("first", "", "new first name")
	last := fs.String("last", "", "new last name")
	phone := fs.String("phone", "", "new phone number")
	address := fs.String("address", "", "new address")
	if err := parse(fs, args); err != nil {
		return err
	}

	profile, err := app.api.GetProfile(ctx)
	if err != nil {
		return err
	}

	changed := false
	fs.Visit(func(f *flag.Flag) {
		changed = true
		switch f.Name {
		case "first":
			profile.FirstName = *first
		case "last":
			profile.LastName = *last
		case "phone":
			profile.Phone = *phone
		case "address":
			profile.Address = *address
		}
	})
	if changed {
		if profile, err = app.api.UpdateProfile(ctx, *profile); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(app.out)
	enc.SetIndent("", "  ")
	return enc.Encode(profile)
}

func (app *Application) cmdChangePassword(ctx context.Context, fs *flag.FlagSet, args []string) error {
	current := fs.String("current", "", "current password")
	next := fs.String("new", "", "new password")
	if err := parse(fs, args); err != nil {
		return err
	}
	if len(*next) < signup.MinPasswordLength {
		return fmt.Errorf("%w: new password must be at least %d characters", ErrUsage, signup.MinPasswordLength)
	}

	resp, err := app.api.ChangePassword(ctx, *current, *next)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out, resp.Message)
	return nil
}

func (app *Application) currentUser(ctx context.Context) (*authsdk.StoredUser, error) {
	user, err := app.api.CurrentUser(ctx)
	if errors.Is(err, sessionstore.ErrNotFound) {
		return nil, errors.New("not logged in (run propauth login)")
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return user, nil
}
