package ports

import (
	"context"
	"time"
)

// Cache is the key/value layer behind the result and score caches. It is
// advisory: callers must stay correct when every call on it fails.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePattern removes every key matching a glob pattern, e.g.
	// "search_results_*". Over-invalidation is acceptable; under-invalidation
	// is not.
	DeletePattern(ctx context.Context, pattern string) error
	Ping() error
	Close() error
}
