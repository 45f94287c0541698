// Package cache stores solve results and rendered images keyed by a hash of
// their inputs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for servers
//   - [NullCache]: stores nothing, for tests and --no-cache
//
// # Keys
//
// Keys are produced by a [Keyer]. The default keyer hashes the graph snapshot
// together with every option that changes the output, so editing a graph or
// switching algorithm never returns a stale result. [NewScopedKeyer] adds a
// prefix to separate tenants sharing one backend.
//
// # Retries
//
// Network backends mark transient failures with [Retryable];
// [RetryWithBackoff] retries those and gives up immediately on anything else.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	TTLSolve  = 7 * 24 * time.Hour
	TTLRender = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures. A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
