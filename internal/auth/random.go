package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	otpDigits       = 6
	passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
)

// GenerateOTP returns a zero-padded six digit code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %v", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}

// RandomPassword returns n characters drawn uniformly from passwordCharset.
func RandomPassword(n int) (string, error) {
	if n <= 0 {
		n = 24
	}
	max := big.NewInt(int64(len(passwordCharset)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %v", err)
		}
		out[i] = passwordCharset[idx.Int64()]
	}
	return string(out), nil
}
