package inmemory

import (
	"context"
	"sync"
	"time"

	"medspace-api/internal/models"
	"medspace-api/internal/repositories"
	"medspace-api/pkg/cache"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NewsletterRepo struct {
	mu          sync.RWMutex
	subscribers []models.NewsletterSubscriber
	Err         error
}

var _ repositories.NewsletterRepository = (*NewsletterRepo)(nil)

func NewNewsletterRepo() *NewsletterRepo {
	return &NewsletterRepo{}
}

func (r *NewsletterRepo) FindByEmail(_ context.Context, email string) (*models.NewsletterSubscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	email = cache.NormalizeEmail(email)
	for _, s := range r.subscribers {
		if s.Email == email {
			found := s
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *NewsletterRepo) Create(_ context.Context, subscriber *models.NewsletterSubscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	subscriber.Email = cache.NormalizeEmail(subscriber.Email)
	for _, s := range r.subscribers {
		if s.Email == subscriber.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	if subscriber.ID.IsZero() {
		subscriber.ID = primitive.NewObjectID()
	}
	if subscriber.SubscribedAt.IsZero() {
		subscriber.SubscribedAt = time.Now().UTC()
	}
	r.subscribers = append(r.subscribers, *subscriber)
	return nil
}

func (r *NewsletterRepo) ListEmails(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	emails := make([]string, 0, len(r.subscribers))
	for _, s := range r.subscribers {
		emails = append(emails, s.Email)
	}
	return emails, nil
}

func (r *NewsletterRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscribers)
}
