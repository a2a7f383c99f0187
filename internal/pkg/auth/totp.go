package auth

import (
	"github.com/pquerna/otp/totp"
)

// TOTPIssuer is shown in authenticator apps next to the account
const TOTPIssuer = "SchoolMate"

// GenerateTOTPSecret creates a new TOTP secret for a user and returns the
// secret together with the otpauth provisioning URL
func GenerateTOTPSecret(email string) (secret, url string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      TOTPIssuer,
		AccountName: email,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// ValidateTOTP checks a one-time code against the stored secret
func ValidateTOTP(code, secret string) bool {
	return totp.Validate(code, secret)
}
