// Package signup holds the signup form state, its validation rules and the
// controller that submits it.
package signup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/propauth/pkg/authsdk"
)

// Input names accepted by FormState.Set.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldPhone           = "phone"
	FieldAddress         = "address"
	FieldRole            = "role"
	FieldEnableTwoFactor = "enableTwoFactor"
)

// FormState is the editable content of the signup form.
type FormState struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	Address         string
	Role            authsdk.Role
	EnableTwoFactor bool
}

// NewFormState returns an empty form for a client account.
func NewFormState() FormState {
	return FormState{Role: authsdk.RoleClient}
}

// Set updates one field by its input name. enableTwoFactor takes a
// checkbox value ("true", "on", "1", ...).
func (f *FormState) Set(field, value string) error {
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldEmail:
		f.Email = value
	case FieldPassword:
		f.Password = value
	case FieldConfirmPassword:
		f.ConfirmPassword = value
	case FieldPhone:
		f.Phone = value
	case FieldAddress:
		f.Address = value
	case FieldRole:
		role, err := authsdk.ParseRole(value)
		if err != nil {
			return err
		}
		f.Role = role
	case FieldEnableTwoFactor:
		on, err := parseCheckbox(value)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		f.EnableTwoFactor = on
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func parseCheckbox(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "yes", "checked":
		return true, nil
	case "", "off", "no":
		return false, nil
	}
	return strconv.ParseBool(v)
}

// Request projects the form onto the wire request. The confirmation is
// dropped and text fields are trimmed; the password is sent as typed.
func (f FormState) Request() authsdk.SignupRequest {
	return authsdk.SignupRequest{
		FirstName:       strings.TrimSpace(f.FirstName),
		LastName:        strings.TrimSpace(f.LastName),
		Email:           strings.TrimSpace(f.Email),
		Password:        f.Password,
		Phone:           strings.TrimSpace(f.Phone),
		Address:         strings.TrimSpace(f.Address),
		Role:            f.Role,
		EnableTwoFactor: f.EnableTwoFactor,
	}
}
