package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer.
// Implementations can be swapped (Redis, no-op for tests).
type Cache interface {
	// Get loads the value stored at key into dest.
	// found=false on a cache miss, dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}

// noop never stores anything; every Get is a miss.
type noop struct{}

// NewNoop returns a Cache that does nothing
func NewNoop() Cache {
	return noop{}
}

func (noop) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (noop) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (noop) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (noop) Ping(ctx context.Context) error {
	return nil
}
