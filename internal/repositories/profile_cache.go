package repositories

import (
	"context"
	"time"

	"medspace-api/internal/models"
	"medspace-api/pkg/cache"
	"medspace-api/pkg/metrics"
)

type redisProfileCache struct {
	cache cache.CacheOperations
}

// NewProfileCache caches the client-facing view of a user; secrets are dropped by the JSON encoding.
func NewProfileCache(c cache.CacheOperations) ProfileCache {
	return &redisProfileCache{cache: c}
}

func (p *redisProfileCache) Get(ctx context.Context, userID string) (*models.User, bool, error) {
	var user models.User
	found, err := p.cache.Get(ctx, cache.ProfileKey(userID), &user)
	if err != nil {
		if !cache.IsRetryable(err) {
			// unreadable entry; drop it so the next read repopulates from MongoDB
			_ = p.cache.Delete(ctx, cache.ProfileKey(userID))
		}
		return nil, false, err
	}
	if !found {
		metrics.CacheMissesTotal.Inc()
		return nil, false, nil
	}
	metrics.CacheHitsTotal.Inc()
	return &user, true, nil
}

func (p *redisProfileCache) Set(ctx context.Context, user *models.User, ttl time.Duration) error {
	return p.cache.Set(ctx, cache.ProfileKey(user.ID.Hex()), user, ttl)
}

func (p *redisProfileCache) Invalidate(ctx context.Context, userID string) error {
	return p.cache.Delete(ctx, cache.ProfileKey(userID))
}
