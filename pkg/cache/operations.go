package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"medspace-api/pkg/logger"
	"medspace-api/pkg/metrics"

	"github.com/go-redis/redis/v8"
)

// Store implements CacheOperations on a Redis client.
type Store struct {
	client *redis.Client
}

var _ CacheOperations = (*Store)(nil)

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// observe records latency for op, and an error unless err is nil or a plain miss.
func observe(op string, start time.Time, err error) {
	metrics.RedisOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, redis.Nil) {
		metrics.RedisErrorsTotal.WithLabelValues(op).Inc()
	}
}

// store a value as JSON with the given key and expiration time.
func (s *Store) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return NewCacheError("marshal", err, false)
	}
	start := time.Now()
	err = s.client.Set(ctx, key, data, expiration).Err()
	observe("set", start, err)
	if err != nil {
		logger.GlobalLogger.Errorf("failed to set key %s: %v", key, err)
		return NewCacheError("set", err, true)
	}
	return nil
}

// retrieve a JSON value into dest. A missing key reports (false, nil).
func (s *Store) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	start := time.Now()
	val, err := s.client.Get(ctx, key).Result()
	observe("get", start, err)
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		logger.GlobalLogger.Errorf("failed to get key %s: %v", key, err)
		return false, NewCacheError("get", err, true)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, NewCacheError("unmarshal", err, false)
	}
	return true, nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	start := time.Now()
	err := s.client.Del(ctx, keys...).Err()
	observe("delete", start, err)
	if err != nil && !errors.Is(err, redis.Nil) {
		logger.GlobalLogger.Errorf("failed to delete keys %v: %v", keys, err)
		return NewCacheError("delete", err, true)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	count, err := s.client.Exists(ctx, key).Result()
	observe("exists", start, err)
	if err != nil {
		return false, NewCacheError("exists", err, true)
	}
	return count > 0, nil
}

func (s *Store) Take(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	val, err := takeScript.Run(ctx, s.client, []string{key}).Text()
	observe("take", start, err)
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		logger.GlobalLogger.Errorf("failed to take key %s: %v", key, err)
		return "", false, NewCacheError("take", err, true)
	}
	return val, true, nil
}
