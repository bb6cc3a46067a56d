// internal/cache/cache.go
package cache

import (
	"context"
	"time"
)

// Store is the derived-artifact cache. Values are opaque serialized
// blobs; every entry carries a TTL. There are no transactional
// guarantees across keys.
type Store interface {
	// Get returns the stored value, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeleteByPrefix drops every key starting with prefix. Needed for
	// artifacts whose keys are parameterized (e.g. summary by range).
	DeleteByPrefix(ctx context.Context, prefix string) error
}
