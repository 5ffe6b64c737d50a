package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache.GetJSON when the key is absent.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache is the read-through cache used by the reporting engine and the
// entity lookups. Implementations must be best effort: a cache outage
// degrades latency, never correctness. ErrCacheMiss is the only error
// callers branch on; anything else is logged and treated as a miss.
type Cache interface {
	// GetJSON fetches the value at key and unmarshals it into dest.
	// Returns ErrCacheMiss when the key is absent.
	GetJSON(ctx context.Context, key string, dest any) error

	// SetJSON marshals value and stores it at key with the given TTL.
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
