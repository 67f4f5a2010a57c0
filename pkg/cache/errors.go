package cache

import (
	"errors"
	"fmt"
)

// CacheError wraps a failed Redis call with the operation that failed.
type CacheError struct {
	Operation string
	Err       error
	Retryable bool
}

func NewCacheError(operation string, err error, retryable bool) *CacheError {
	return &CacheError{
		Operation: operation,
		Err:       err,
		Retryable: retryable,
	}
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache operation %s failed: %v", e.Operation, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a transient cache failure.
func IsRetryable(err error) bool {
	var ce *CacheError
	return errors.As(err, &ce) && ce.Retryable
}
