package authsdk_test

import (
	"testing"

	"github.com/aussiebroadwan/propauth/pkg/authsdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestParseTwoFactorURI(t *testing.T) {
	t.Parallel()

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "PropAuth", AccountName: "ada@example.com"})
	require.NoError(t, err)

	got, err := authsdk.ParseTwoFactorURI(key.URL())
	require.NoError(t, err)
	require.Equal(t, "PropAuth", got.Issuer)
	require.Equal(t, "ada@example.com", got.AccountName)
	require.Equal(t, key.Secret(), got.Secret)
	require.Equal(t, uint64(30), got.Period)
	require.Equal(t, 6, got.Digits)

	t.Run("rejects hotp", func(t *testing.T) {
		_, err := authsdk.ParseTwoFactorURI("otpauth://hotp/x?secret=JBSWY3DPEHPK3PXP&counter=1")
		require.Error(t, err)
	})

	t.Run("rejects missing secret", func(t *testing.T) {
		_, err := authsdk.ParseTwoFactorURI("otpauth://totp/PropAuth:ada")
		require.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := authsdk.ParseTwoFactorURI("::")
		require.Error(t, err)
	})
}
