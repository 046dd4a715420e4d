// Package cache provides the key-value persistence used by the bookfair
// client.
//
// Everything the client keeps between runs goes through [Cache]: the bearer
// token, saved genre preferences, the local mirror of "my reservations" per
// event, and cached backend responses. Callers receive a Cache by injection
// and never touch files or servers directly, so tests swap in [NewMemory].
//
// # Backends
//
//   - [NewFileCache]: JSON files under a directory (default for the CLI)
//   - [NewMemory]: process-local map, for tests and --store=memory
//   - [NewRedis]: shared Redis instance
//   - [NewMongo]: MongoDB collection with a TTL index
//   - [NewNullCache]: stores nothing
//
// # Keys
//
// Key names are produced by a [Keyer] so that every backend stores the same
// layout (token, user_genres_{user}, user_reservations_{user}_{event}, ...).
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
//
// A zero ttl stores the value without expiry. Get reports a miss with
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
