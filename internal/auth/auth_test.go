package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("64b7f0c2a1b2c3d4e5f60718", testSecret, 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateJWT(token, testSecret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "64b7f0c2a1b2c3d4e5f60718" {
		t.Errorf("user id: got %s", claims.UserID)
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != DefaultTokenTTL {
		t.Errorf("expected 3 day lifetime, got %v", lifetime)
	}
}

func TestValidateJWTRejects(t *testing.T) {
	expired, err := GenerateJWT("u1", testSecret, time.Nanosecond)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	valid, _ := GenerateJWT("u1", testSecret, time.Hour)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"empty", "", testSecret},
		{"garbage", "not.a.token", testSecret},
		{"wrong secret", valid, "other-secret"},
		{"expired", expired, testSecret},
		{"alg none", unsigned, testSecret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateJWT(tt.token, tt.secret); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestGenerateJWTRequiresInputs(t *testing.T) {
	if _, err := GenerateJWT("", testSecret, time.Hour); err == nil {
		t.Error("expected error for empty user id")
	}
	if _, err := GenerateJWT("u1", "", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "correct horse") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong horse") {
		t.Error("expected wrong password to fail")
	}
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP()
		if err != nil {
			t.Fatalf("otp: %v", err)
		}
		if len(otp) != 6 || strings.Trim(otp, "0123456789") != "" {
			t.Fatalf("otp %q is not six digits", otp)
		}
	}
}

func TestRandomPassword(t *testing.T) {
	a, err := RandomPassword(32)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	b, _ := RandomPassword(32)
	if len(a) != 32 {
		t.Errorf("length: got %d", len(a))
	}
	if a == b {
		t.Error("two random passwords should differ")
	}
}

func TestHashPasswordByteLimit(t *testing.T) {
	if _, err := HashPassword(strings.Repeat("a", MaxPasswordBytes)); err != nil {
		t.Fatalf("72 bytes should hash: %v", err)
	}
	if _, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("expected ErrPasswordTooLong, got %v", err)
	}
	// 37 two-byte runes
	if _, err := HashPassword(strings.Repeat("é", 37)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("limit counts bytes, got %v", err)
	}
}
