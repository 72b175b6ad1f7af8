package mockauth

import (
	"context"
	"encoding/base32"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aussiebroadwan/propauth/pkg/authsdk"
	"github.com/aussiebroadwan/propauth/pkg/cryptox"
	"github.com/aussiebroadwan/propauth/pkg/jwtx"
	"github.com/aussiebroadwan/propauth/pkg/slogx"
	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	DefaultTOTPIssuer = "Property Management"
	DefaultResetTTL   = time.Hour
)

var errPendingToken = errors.New("mockauth: two-factor verification pending")

// Service implements the account flows behind the HTTP handlers.
type Service struct {
	Users   *Directory
	Tokens  *jwtx.HS256
	Mailer  Mailer
	Metrics *Metrics

	TOTPIssuer string
	SessionTTL time.Duration
	PendingTTL time.Duration
	ResetTTL   time.Duration

	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) totpIssuer() string {
	if s.TOTPIssuer != "" {
		return s.TOTPIssuer
	}
	return DefaultTOTPIssuer
}

func orDefault(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return def
}

// Register creates an account. With EnableTwoFactor set the account is
// created with a fresh TOTP secret and two-factor already on.
func (s *Service) Register(ctx context.Context, in SignupBody) (*authsdk.MessageResponse, error) {
	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acct := Account{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		Role:         authsdk.Role(in.Role),
		PasswordHash: hash,
	}
	if in.EnableTwoFactor {
		secret, err := s.newSecret(in.Email)
		if err != nil {
			return nil, err
		}
		acct.TwoFactorSecret = secret
		acct.TwoFactorEnabled = true
	}

	acct, err = s.Users.Create(acct)
	if errors.Is(err, ErrEmailTaken) {
		s.Metrics.signup("duplicate")
		return nil, badRequest(msgEmailTaken)
	}
	if err != nil {
		return nil, err
	}
	s.Metrics.signup("success")

	if err := s.Mailer.SendWelcome(ctx, acct); err != nil {
		slogx.FromContext(ctx).Warn("welcome email failed", "user_id", acct.ID, "error", err)
	}

	return &authsdk.MessageResponse{Message: msgRegistered, Success: true}, nil
}

// Authenticate checks email and password. Accounts with two-factor on get
// a short-lived pending token and Authenticated false.
func (s *Service) Authenticate(ctx context.Context, in LoginBody) (*authsdk.JwtResponse, error) {
	acct, err := s.Users.ByEmail(in.Email)
	if err != nil {
		s.Metrics.login("failure")
		return nil, errBadCredentials
	}
	if err := cryptox.VerifyPassword(in.Password, acct.PasswordHash); err != nil {
		s.Metrics.login("failure")
		return nil, errBadCredentials
	}

	pending := acct.TwoFactorEnabled
	resp, err := s.issue(acct, pending)
	if err != nil {
		return nil, err
	}

	if pending {
		s.Metrics.login("pending")
	} else {
		s.Metrics.login("success")
	}
	slogx.FromContext(ctx).Info("login", "user_id", acct.ID, "authenticated", resp.Authenticated)
	return resp, nil
}

// VerifyTwoFactor exchanges a pending token and a TOTP code for a session.
func (s *Service) VerifyTwoFactor(ctx context.Context, in VerifyBody) (*authsdk.JwtResponse, error) {
	claims, err := s.Tokens.Verify(in.Token)
	if err != nil {
		return nil, badRequest(msgInvalidToken)
	}

	acct, err := s.accountFor(claims.Subject)
	if err != nil {
		return nil, notFound("User not found")
	}

	if !s.validCode(acct, in.Code) {
		return nil, badRequest(msgInvalidCode)
	}

	slogx.FromContext(ctx).Info("two-factor verified", "user_id", acct.ID)
	return s.issue(acct, false)
}

// ForgotPassword issues a single-use reset token and mails it.
func (s *Service) ForgotPassword(ctx context.Context, email string) (*authsdk.MessageResponse, error) {
	acct, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, notFound("User not found with email: " + email)
	}

	resetToken := uuid.NewString()
	expiry := s.now().Add(orDefault(s.ResetTTL, DefaultResetTTL))

	acct, err = s.Users.Update(acct.ID, func(a *Account) error {
		a.ResetFingerprint = cryptox.FingerprintToken(resetToken)
		a.ResetExpiry = expiry
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.Mailer.SendPasswordReset(ctx, acct, resetToken); err != nil {
		return nil, fmt.Errorf("send password reset email: %w", err)
	}

	return &authsdk.MessageResponse{Message: msgResetSent, Success: true}, nil
}

// ResetPassword sets a new password. An email, when given, selects the
// account directly; otherwise the reset token must be outstanding and
// unexpired.
func (s *Service) ResetPassword(ctx context.Context, in ResetBody) (*authsdk.MessageResponse, error) {
	var (
		acct Account
		err  error
	)

	switch {
	case in.Email != "":
		acct, err = s.Users.ByEmail(in.Email)
		if err != nil {
			return nil, notFound("User not found with email: " + in.Email)
		}
	case in.Token != "":
		acct, err = s.Users.ByResetFingerprint(cryptox.FingerprintToken(in.Token))
		if err != nil {
			return nil, notFound(msgResetUnknown)
		}
		if acct.ResetExpiry.Before(s.now()) {
			return nil, badRequest(msgResetExpired)
		}
	default:
		return nil, badRequest(msgResetMissing)
	}

	hash, err := cryptox.HashPassword(in.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.Users.Update(acct.ID, func(a *Account) error {
		a.PasswordHash = hash
		a.ResetFingerprint = ""
		a.ResetExpiry = time.Time{}
		return nil
	}); err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("password reset", "user_id", acct.ID)
	return &authsdk.MessageResponse{Message: msgResetDone, Success: true}, nil
}

// TwoFactorURI returns the otpauth URI for the account, creating a secret
// when it has none. It does not turn two-factor on.
func (s *Service) TwoFactorURI(_ context.Context, id int64) (string, error) {
	acct, err := s.Users.Update(id, func(a *Account) error {
		if a.TwoFactorSecret != "" {
			return nil
		}
		secret, err := s.newSecret(a.Email)
		if err != nil {
			return err
		}
		a.TwoFactorSecret = secret
		return nil
	})
	if errors.Is(err, ErrUserNotFound) {
		return "", notFound("User not found with id: " + strconv.FormatInt(id, 10))
	}
	if err != nil {
		return "", err
	}

	key, err := s.otpKey(acct.Email, acct.TwoFactorSecret)
	if err != nil {
		return "", err
	}
	return key.URL(), nil
}

// EnableTwoFactor turns two-factor on once code matches the account secret.
func (s *Service) EnableTwoFactor(ctx context.Context, id int64, code string) (*authsdk.MessageResponse, error) {
	_, err := s.Users.Update(id, func(a *Account) error {
		if a.TwoFactorEnabled {
			return badRequest(msgTwoFAWasEnabled)
		}
		if a.TwoFactorSecret == "" {
			secret, err := s.newSecret(a.Email)
			if err != nil {
				return err
			}
			a.TwoFactorSecret = secret
		}
		if !s.validCode(*a, code) {
			return badRequest(msgInvalidCode)
		}
		a.TwoFactorEnabled = true
		return nil
	})
	if err := s.userErr(id, err); err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("two-factor enabled", "user_id", id)
	return &authsdk.MessageResponse{Message: msgTwoFAEnabled, Success: true}, nil
}

// DisableTwoFactor turns two-factor off and forgets the secret.
func (s *Service) DisableTwoFactor(ctx context.Context, id int64, code string) (*authsdk.MessageResponse, error) {
	_, err := s.Users.Update(id, func(a *Account) error {
		if !a.TwoFactorEnabled {
			return badRequest(msgTwoFAWasDisabled)
		}
		if !s.validCode(*a, code) {
			return badRequest(msgInvalidCode)
		}
		a.TwoFactorEnabled = false
		a.TwoFactorSecret = ""
		return nil
	})
	if err := s.userErr(id, err); err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("two-factor disabled", "user_id", id)
	return &authsdk.MessageResponse{Message: msgTwoFADisabled, Success: true}, nil
}

// Profile returns the account behind an authenticated subject.
func (s *Service) Profile(_ context.Context, subject string) (*authsdk.User, error) {
	acct, err := s.accountFor(subject)
	if err != nil {
		return nil, notFound("User not found")
	}
	u := acct.Profile()
	return &u, nil
}

// UpdateProfile replaces the editable profile fields.
func (s *Service) UpdateProfile(_ context.Context, subject string, in ProfileBody) (*authsdk.User, error) {
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, notFound("User not found")
	}

	acct, err := s.Users.Update(id, func(a *Account) error {
		a.FirstName = in.FirstName
		a.LastName = in.LastName
		a.Phone = in.Phone
		a.Address = in.Address
		return nil
	})
	if err := s.userErr(id, err); err != nil {
		return nil, err
	}
	u := acct.Profile()
	return &u, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, subject, current, next string) (*authsdk.MessageResponse, error) {
	acct, err := s.accountFor(subject)
	if err != nil {
		return nil, notFound("User not found")
	}
	if err := cryptox.VerifyPassword(current, acct.PasswordHash); err != nil {
		return nil, badRequest(msgWrongPassword)
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.Users.Update(acct.ID, func(a *Account) error {
		a.PasswordHash = hash
		return nil
	}); err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("password changed", "user_id", acct.ID)
	return &authsdk.MessageResponse{Message: msgPasswordChanged, Success: true}, nil
}

// VerifySession accepts fully authenticated tokens only.
func (s *Service) VerifySession(_ context.Context, token string) (string, error) {
	claims, err := s.Tokens.Verify(token)
	if err != nil {
		return "", err
	}
	if claims.TwoFactorPending {
		return "", errPendingToken
	}
	return claims.Subject, nil
}

// VerifyAny also accepts pending two-factor tokens, so an account that
// signed up with two-factor can fetch its secret before its first full
// login.
func (s *Service) VerifyAny(_ context.Context, token string) (string, error) {
	claims, err := s.Tokens.Verify(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *Service) issue(acct Account, pending bool) (*authsdk.JwtResponse, error) {
	ttl := orDefault(s.SessionTTL, jwtx.DefaultSessionTTL)
	if pending {
		ttl = orDefault(s.PendingTTL, jwtx.DefaultPendingTTL)
	}

	claims := jwtx.NewClaims(
		strconv.FormatInt(acct.ID, 10),
		acct.Email,
		acct.Authorities(),
		pending,
		ttl,
		s.Tokens.Issuer(),
		s.now(),
	)
	token, err := s.Tokens.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &authsdk.JwtResponse{
		Token:            token,
		Type:             "Bearer",
		ID:               acct.ID,
		Email:            acct.Email,
		FirstName:        acct.FirstName,
		LastName:         acct.LastName,
		Roles:            acct.Authorities(),
		TwoFactorEnabled: acct.TwoFactorEnabled,
		Authenticated:    !pending,
	}, nil
}

func (s *Service) accountFor(subject string) (Account, error) {
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return Account{}, ErrUserNotFound
	}
	return s.Users.ByID(id)
}

// userErr maps directory failures for account id onto client errors.
func (s *Service) userErr(id int64, err error) error {
	if errors.Is(err, ErrUserNotFound) {
		return notFound("User not found with id: " + strconv.FormatInt(id, 10))
	}
	return err
}

func (s *Service) newSecret(email string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.totpIssuer(),
		AccountName: email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("generate TOTP key: %w", err)
	}
	return key.Secret(), nil
}

// otpKey rebuilds the key for a stored base32 secret.
func (s *Service) otpKey(email, secret string) (*otp.Key, error) {
	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("decode TOTP secret: %w", err)
	}
	return totp.Generate(totp.GenerateOpts{
		Issuer:      s.totpIssuer(),
		AccountName: email,
		Period:      30,
		Secret:      raw,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
}

func (s *Service) validCode(acct Account, code string) bool {
	if acct.TwoFactorSecret == "" || code == "" {
		return false
	}
	ok, err := totp.ValidateCustom(code, acct.TwoFactorSecret, s.now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
