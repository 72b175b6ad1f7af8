package signup

import (
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/propauth/pkg/authsdk"
)

const MinPasswordLength = 6

type rule struct {
	ok  func(FormState) bool
	msg string
}

// rules run in order; the first failure is reported.
var rules = []rule{
	{func(f FormState) bool { return strings.TrimSpace(f.FirstName) != "" }, "First name is required"},
	{func(f FormState) bool { return strings.TrimSpace(f.LastName) != "" }, "Last name is required"},
	{func(f FormState) bool { return strings.TrimSpace(f.Email) != "" }, "Email is required"},
	{func(f FormState) bool { return strings.Contains(f.Email, "@") }, "Invalid email format"},
	{func(f FormState) bool { return f.Password != "" }, "Password is required"},
	{func(f FormState) bool { return utf8.RuneCountInString(f.Password) >= MinPasswordLength }, "Password must be at least 6 characters long"},
	{func(f FormState) bool { return f.Password == f.ConfirmPassword }, "Passwords do not match"},
}

// Validate returns a KindValidation *authsdk.APIError for the first rule
// the form breaks, or nil.
func Validate(f FormState) error {
	for _, r := range rules {
		if !r.ok(f) {
			return authsdk.NewValidationError(r.msg)
		}
	}
	return nil
}
