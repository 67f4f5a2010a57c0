package repositories

import (
	"context"
	"time"

	"medspace-api/pkg/cache"
)

type redisResetStore struct {
	cache cache.CacheOperations
}

func NewResetStore(c cache.CacheOperations) ResetStore {
	return &redisResetStore{cache: c}
}

func (s *redisResetStore) MarkVerified(ctx context.Context, email string, ttl time.Duration) error {
	return s.cache.Set(ctx, cache.ResetVerifiedKey(email), true, ttl)
}

func (s *redisResetStore) ConsumeVerified(ctx context.Context, email string) (bool, error) {
	_, ok, err := s.cache.Take(ctx, cache.ResetVerifiedKey(email))
	return ok, err
}
