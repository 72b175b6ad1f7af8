package mockauth

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/propauth/pkg/httpx"
	"github.com/aussiebroadwan/propauth/pkg/slogx"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type errorBody struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	Details string `json:"details,omitempty"`
}

// Handler serves the auth and client endpoints.
type Handler struct {
	Service  *Service
	validate *validator.Validate
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc, validate: newValidator()}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var e *Error
	if errors.As(err, &e) {
		httpx.WriteJSON(w, e.Status, errorBody{Message: e.Message, Details: e.Details})
		return
	}

	slogx.FromContext(r.Context()).Error("request failed", "error", err)
	httpx.WriteJSON(w, http.StatusInternalServerError, errorBody{Message: msgInternal})
}

// bind decodes and validates the JSON body into v. It writes the error
// response itself and reports whether the handler should continue.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(r, v); err != nil {
		writeError(w, r, &Error{Status: http.StatusBadRequest, Message: msgValidation, Details: "malformed JSON body"})
		return false
	}
	return h.check(w, r, v)
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := h.validate.Struct(v); err != nil {
		writeError(w, r, validationError(err))
		return false
	}
	return true
}

// Signup handles POST /auth/signup
//
//	@Summary		Register an account
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignupBody	true	"Request body"
//	@Success		200		{object}	authsdk.MessageResponse
//	@Failure		400		{object}	errorBody	"Email is already taken or validation error"
//	@Router			/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body SignupBody
	if !h.bind(w, r, &body) {
		return
	}

	resp, err := h.Service.Register(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// Login handles POST /auth/login
//
//	@Summary		Log in with email and password
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginBody	true	"Request body"
//	@Success		200		{object}	authsdk.JwtResponse
//	@Failure		400		{object}	errorBody	"Validation error"
//	@Failure		401		{object}	errorBody
//	@Router			/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body LoginBody
	if !h.bind(w, r, &body) {
		return
	}

	resp, err := h.Service.Authenticate(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// VerifyTwoFactor handles POST /auth/verify-2fa
//
//	@Summary		Exchange a pending token and TOTP code for a session
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		VerifyBody	true	"Request body"
//	@Success		200		{object}	authsdk.JwtResponse
//	@Failure		400		{object}	errorBody	"Invalid token or code"
//	@Router			/auth/verify-2fa [post]
func (h *Handler) VerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	var body VerifyBody
	if !h.bind(w, r, &body) {
		return
	}

	resp, err := h.Service.VerifyTwoFactor(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// ForgotPassword takes the email from the query string and falls back to
// a JSON body.
//
//	@Summary		Request a password reset email
//	@Tags			Auth
//	@Produce		json
//	@Param			email	query	string	true	"Account email"
//	@Failure		400		{object}	errorBody
//	@Failure		404		{object}	errorBody
//	@Router			/auth/forgot-password [post]
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	body := ForgotBody{Email: r.URL.Query().Get("email")}
	if body.Email == "" && r.ContentLength != 0 {
		if err := httpx.DecodeJSON(r, &body); err != nil {
			writeError(w, r, &Error{Status: http.StatusBadRequest, Message: msgValidation, Details: "malformed JSON body"})
			return
		}
	}
	if !h.check(w, r, &body) {
		return
	}

	resp, err := h.Service.ForgotPassword(r.Context(), body.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// ResetPassword handles POST /auth/reset-password
//
//	@Summary		Set a new password with a reset token or email
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ResetBody	true	"Request body"
//	@Success		200		{object}	authsdk.MessageResponse
//	@Failure		400		{object}	errorBody	"Missing or expired token"
//	@Router			/auth/reset-password [post]
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body ResetBody
	if !h.bind(w, r, &body) {
		return
	}

	resp, err := h.Service.ResetPassword(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// GenerateTwoFactor answers with the otpauth URI as plain text.
//
//	@Summary		Get the otpauth enrollment URI
//	@Tags			Two-Factor
//	@Produce		plain
//	@Security		BearerAuth
//	@Param			userId	path	int	true	"User ID"
//	@Failure		401		{object}	errorBody
//	@Failure		403		{object}	errorBody
//	@Failure		404		{object}	errorBody
//	@Router			/auth/2fa/generate/{userId} [get]
func (h *Handler) GenerateTwoFactor(w http.ResponseWriter, r *http.Request) {
	id, ok := ownUserID(w, r)
	if !ok {
		return
	}

	uri, err := h.Service.TwoFactorURI(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(uri))
}

// EnableTwoFactor handles POST /auth/2fa/enable/{userId}
//
//	@Summary		Turn two-factor on
//	@Tags			Two-Factor
//	@Produce		json
//	@Security		BearerAuth
//	@Param			userId	path	int	true	"User ID"
//	@Param			code	query	string	true	"TOTP code"
//	@Failure		400		{object}	errorBody
//	@Failure		401		{object}	errorBody
//	@Failure		403		{object}	errorBody
//	@Router			/auth/2fa/enable/{userId} [post]
func (h *Handler) EnableTwoFactor(w http.ResponseWriter, r *http.Request) {
	id, ok := ownUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.Service.EnableTwoFactor(r.Context(), id, r.URL.Query().Get("code"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// DisableTwoFactor handles POST /auth/2fa/disable/{userId}
//
//	@Summary		Turn two-factor off
//	@Tags			Two-Factor
//	@Produce		json
//	@Security		BearerAuth
//	@Param			userId	path	int	true	"User ID"
//	@Param			code	query	string	true	"TOTP code"
//	@Failure		400		{object}	errorBody
//	@Failure		401		{object}	errorBody
//	@Failure		403		{object}	errorBody
//	@Router			/auth/2fa/disable/{userId} [post]
func (h *Handler) DisableTwoFactor(w http.ResponseWriter, r *http.Request) {
	id, ok := ownUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.Service.DisableTwoFactor(r.Context(), id, r.URL.Query().Get("code"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// GetProfile handles GET /client/profile
//
//	@Summary		Get the caller's profile
//	@Tags			Client
//	@Produce		json
//	@Security		BearerAuth
//	@Failure		401		{object}	errorBody
//	@Router			/client/profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	sub, _ := httpx.SubjectFromContext(r.Context())

	u, err := h.Service.Profile(r.Context(), sub)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// UpdateProfile handles PUT /client/profile
//
//	@Summary		Update the caller's profile
//	@Tags			Client
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ProfileBody	true	"Request body"
//	@Success		200		{object}	authsdk.User
//	@Failure		400		{object}	errorBody	"Validation error"
//	@Failure		401		{object}	errorBody
//	@Router			/client/profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body ProfileBody
	if !h.bind(w, r, &body) {
		return
	}
	sub, _ := httpx.SubjectFromContext(r.Context())

	u, err := h.Service.UpdateProfile(r.Context(), sub, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// ChangePassword reads both passwords from the query string.
//
//	@Summary		Change the password
//	@Tags			Client
//	@Produce		json
//	@Security		BearerAuth
//	@Param			currentPassword	query	string	true	"Current password"
//	@Param			newPassword	query	string	true	"New password"
//	@Failure		400		{object}	errorBody
//	@Failure		401		{object}	errorBody
//	@Router			/client/change-password [put]
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	body := passwordChange{
		CurrentPassword: q.Get("currentPassword"),
		NewPassword:     q.Get("newPassword"),
	}
	if !h.check(w, r, &body) {
		return
	}
	sub, _ := httpx.SubjectFromContext(r.Context())

	resp, err := h.Service.ChangePassword(r.Context(), sub, body.CurrentPassword, body.NewPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// ownUserID parses the {userId} path parameter and requires it to be the
// authenticated subject.
func ownUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "userId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, &Error{Status: http.StatusBadRequest, Message: msgValidation, Details: "userId: numeric"})
		return 0, false
	}

	if sub, _ := httpx.SubjectFromContext(r.Context()); sub != raw {
		writeError(w, r, errForbidden)
		return 0, false
	}
	return id, true
}
