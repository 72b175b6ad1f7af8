package authsdk

import (
	"fmt"

	"github.com/pquerna/otp"
)

// TwoFactorKey is the enrollment detail from an otpauth URI.
type TwoFactorKey struct {
	Issuer      string
	AccountName string
	Secret      string
	Period      uint64
	Digits      int
	URI         string
}

// ParseTwoFactorURI parses an otpauth:// URI as served at login or by
// GenerateTwoFactorQRCode.
func ParseTwoFactorURI(uri string) (*TwoFactorKey, error) {
	key, err := otp.NewKeyFromURL(uri)
	if err != nil {
		return nil, fmt.Errorf("parse otpauth uri: %w", err)
	}
	if key.Type() != "totp" {
		return nil, fmt.Errorf("unsupported otp type %q", key.Type())
	}
	if key.Secret() == "" {
		return nil, fmt.Errorf("otpauth uri has no secret")
	}

	return &TwoFactorKey{
		Issuer:      key.Issuer(),
		AccountName: key.AccountName(),
		Secret:      key.Secret(),
		Period:      key.Period(),
		Digits:      key.Digits().Length(),
		URI:         key.URL(),
	}, nil
}
