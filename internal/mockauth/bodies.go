package mockauth

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Request bodies as the backend accepts them.

type SignupBody struct {
	FirstName       string `json:"firstName" validate:"required,max=50"`
	LastName        string `json:"lastName" validate:"required,max=50"`
	Email           string `json:"email" validate:"required,email,max=100"`
	Password        string `json:"password" validate:"required,min=6,max=120"`
	Phone           string `json:"phone" validate:"omitempty,max=20"`
	Address         string `json:"address" validate:"omitempty,max=200"`
	Role            string `json:"role" validate:"required,oneof=ADMIN AGENT CLIENT"`
	EnableTwoFactor bool   `json:"enableTwoFactor"`
}

type LoginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyBody struct {
	Token string `json:"token" validate:"required"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type ForgotBody struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetBody struct {
	Token       string `json:"token"`
	Email       string `json:"email" validate:"omitempty,email"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=120"`
}

type ProfileBody struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Address   string `json:"address" validate:"omitempty,max=200"`
}

type passwordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=120"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so details match the wire fields.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError turns validator output into a 400 with per-field details.
func validationError(err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Status: http.StatusBadRequest, Message: msgValidation, Details: err.Error()}
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fe.Field()+": "+rule)
	}
	return &Error{Status: http.StatusBadRequest, Message: msgValidation, Details: strings.Join(parts, "; ")}
}
