package repositories

import (
	"context"
	"errors"
	"time"

	"medspace-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound       = errors.New("document not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository persists User documents together with their embedded appointments.
//
// Save replaces the whole document. Two requests that load the same user, mutate
// it and save will race, and the later write wins; no version check is made.
type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindWithPagination(ctx context.Context, offset, limit int) ([]models.User, int64, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	// Update writes only the named bson fields of user; fields left empty are unset.
	Update(ctx context.Context, user *models.User, fields ...string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type NewsletterRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	Create(ctx context.Context, subscriber *models.NewsletterSubscriber) error
	ListEmails(ctx context.Context) ([]string, error)
}

// ResetStore holds the short-lived marker that a reset OTP was verified.
type ResetStore interface {
	MarkVerified(ctx context.Context, email string, ttl time.Duration) error
	// ConsumeVerified reports whether the marker existed and removes it.
	ConsumeVerified(ctx context.Context, email string) (bool, error)
}

type ProfileCache interface {
	Get(ctx context.Context, userID string) (*models.User, bool, error)
	Set(ctx context.Context, user *models.User, ttl time.Duration) error
	Invalidate(ctx context.Context, userID string) error
}
