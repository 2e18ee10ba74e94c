package port

import (
	"context"
	"time"
)

// Cache is the minimal key-value contract the chat core needs (display-name
// lookups). Implementations must be concurrency-safe and context-aware so
// callers control timeouts and cancellation. Values are plain strings to keep
// the port free of serialization concerns.
type Cache interface {
	// Get fetches the value for key, returning ErrMiss when the key is
	// absent. A non-nil error other than ErrMiss means a transport or
	// server failure.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key with the provided TTL. Zero or negative TTL
	// means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Close releases any resources held by the cache.
	Close() error
}

// ErrMiss signals a cache miss in a typed way so callers can distinguish
// misses from transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "cache: miss" }
