// Package cache is the key-value cache collaborator: a small store contract,
// the redis implementation used in production, an in-memory implementation
// for tests and dry runs, the catalog's key scheme, and the msgpack codec
// for cached payloads.
package cache

import (
	"context"
	"time"
)

// Store is the cache contract the repositories and the coordinator depend
// on. Get signals a miss as (nil, false, nil); errors are transport/server
// failures. Set folds the TTL into the write; ttl <= 0 means no expiry.
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close(ctx context.Context) error
}
