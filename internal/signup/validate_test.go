package signup_test

import (
	"testing"

	"github.com/aussiebroadwan/propauth/internal/signup"
	"github.com/aussiebroadwan/propauth/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func validForm() signup.FormState {
	f := signup.NewFormState()
	f.FirstName = "A"
	f.LastName = "B"
	f.Email = "a@b.com"
	f.Password = "secret1"
	f.ConfirmPassword = "secret1"
	return f
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*signup.FormState)
		want   string
	}{
		{"first name blank", func(f *signup.FormState) { f.FirstName = "   " }, "First name is required"},
		{"last name empty", func(f *signup.FormState) { f.LastName = "" }, "Last name is required"},
		{"email empty", func(f *signup.FormState) { f.Email = " " }, "Email is required"},
		{"email without at", func(f *signup.FormState) { f.Email = "ab.com" }, "Invalid email format"},
		{"password empty", func(f *signup.FormState) { f.Password = ""; f.ConfirmPassword = "" }, "Password is required"},
		{"password short", func(f *signup.FormState) { f.Password = "12345"; f.ConfirmPassword = "12345" }, "Password must be at least 6 characters long"},
		{"passwords differ", func(f *signup.FormState) { f.ConfirmPassword = "secret2" }, "Passwords do not match"},
		{"first failing rule wins", func(f *signup.FormState) { f.FirstName = ""; f.Password = "" }, "First name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			err := signup.Validate(f)
			require.EqualError(t, err, tt.want)

			apiErr, ok := authsdk.AsAPIError(err)
			require.True(t, ok)
			require.Equal(t, authsdk.KindValidation, apiErr.Kind)
		})
	}

	require.NoError(t, signup.Validate(validForm()))
}

func TestValidateExactMinimumLength(t *testing.T) {
	t.Parallel()

	f := validForm()
	f.Password = "123456"
	f.ConfirmPassword = "123456"
	require.NoError(t, signup.Validate(f))
}

func TestValidateCountsCharactersNotBytes(t *testing.T) {
	t.Parallel()

	f := validForm()
	f.Password = "ñññ"
	f.ConfirmPassword = "ñññ"
	require.EqualError(t, signup.Validate(f), "Password must be at least 6 characters long")

	f.Password = "ñññééé"
	f.ConfirmPassword = "ñññééé"
	require.NoError(t, signup.Validate(f))
}
