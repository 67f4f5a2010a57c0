package cache

import (
	"fmt"
	"strings"
)

// NormalizeEmail lower-cases and trims an email so keys are stable.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// cache key for the verified-OTP marker that authorises one password reset.
func ResetVerifiedKey(email string) string {
	return fmt.Sprintf("auth:reset-verified:%s", NormalizeEmail(email))
}

// cache key for a user's rendered profile.
func ProfileKey(userID string) string {
	return fmt.Sprintf("user:profile:%s", userID)
}
