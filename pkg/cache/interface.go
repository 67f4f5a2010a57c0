package cache

import (
	"context"
	"time"
)

// CacheOperations is the JSON key/value surface used by repositories.
type CacheOperations interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Take returns the raw value and deletes the key in one step.
	Take(ctx context.Context, key string) (string, bool, error)
}
