package services

import (
	"errors"
	"fmt"
	"strings"

	"medspace-api/internal/auth"
	apperrors "medspace-api/internal/errors"
	"medspace-api/internal/repositories"
)

func userNotFound() *apperrors.AppError {
	return apperrors.NotFound(apperrors.ErrCodeUserNotFound, apperrors.MsgUserNotFound)
}

func emailTaken() *apperrors.AppError {
	return apperrors.BadRequest(apperrors.ErrCodeEmailTaken, apperrors.MsgEmailTaken)
}

// lookupError turns a repository miss into USER_NOT_FOUND and wraps anything else for MapError.
func lookupError(op string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return userNotFound()
	}
	return fmt.Errorf("%s: %w", op, err)
}

// writeError is lookupError for writes, where a unique-index hit means the email is taken.
func writeError(op string, err error) error {
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		return emailTaken()
	}
	return lookupError(op, err)
}

// hashPassword reports an over-long password against field instead of failing the request with a 500.
func hashPassword(field, password string) (string, error) {
	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", apperrors.Validation([]apperrors.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("%s must be at most %d bytes", field, auth.MaxPasswordBytes),
		}})
	}
	if err != nil {
		return "", apperrors.Internal("hash password", err)
	}
	return hash, nil
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
