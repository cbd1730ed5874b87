package cache

import (
	"context"
	"time"
)

// DefaultTTL applies when a non-positive ttl is given.
const DefaultTTL = 10 * time.Minute

// Cache is a keyed store of values with absolute expiry.
type Cache[V any] interface {
	// TryGet returns the live value for key. Expired or missing entries report false.
	TryGet(ctx context.Context, key string) (V, bool)
	// Set stores value under key, replacing any previous entry, for ttl.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	// Remove deletes the entry for key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Factory produces the value for a cache miss.
type Factory[V any] func(ctx context.Context) (V, error)

// GetOrCreate returns the cached value for key or builds it with factory.
//
// On a miss the factory runs; its error is returned as is and nothing is
// stored. A successful value is stored for ttl and returned even when the
// backend fails to store it.
func GetOrCreate[V any](ctx context.Context, c Cache[V], key string, factory Factory[V], ttl time.Duration) (V, error) {
	if v, ok := c.TryGet(ctx, key); ok {
		return v, nil
	}

	var zero V
	if factory == nil {
		return zero, ErrNilFactory
	}

	v, err := factory(ctx)
	if err != nil {
		return zero, err
	}

	// Backends log their own failures.
	_ = c.Set(ctx, key, v, normalizeTTL(ttl))

	return v, nil
}

func normalizeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
