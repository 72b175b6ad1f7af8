package authsdk

import "context"

const (
	PathLogin          = "/auth/login"
	PathVerifyTwoFA    = "/auth/verify-2fa"
	PathForgotPassword = "/auth/forgot-password"
	PathResetPassword  = "/auth/reset-password"
	PathSignup         = "/auth/signup"
)

// Login authenticates with email and password. Accounts with two-factor
// enabled get a pending token and Authenticated false.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*JwtResponse, error) {
	var resp JwtResponse
	if err := c.post(ctx, PathLogin, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyTwoFactor completes a pending login with a TOTP code.
func (c *SDKClient) VerifyTwoFactor(ctx context.Context, req TwoFactorVerificationRequest) (*JwtResponse, error) {
	var resp JwtResponse
	if err := c.post(ctx, PathVerifyTwoFA, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword asks the server to send a reset link to email.
func (c *SDKClient) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.post(ctx, PathForgotPassword, ForgotPasswordRequest{Email: email}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetPassword sets a new password using a reset token.
func (c *SDKClient) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.post(ctx, PathResetPassword, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup registers a new account.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.post(ctx, PathSignup, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
