// Package cache provides the byte-level caches used by the word-cloud
// pipeline.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [Disabled]: caching turned off
//
// Keys are produced by a [Keyer] so the same analysis always lands on the
// same entry regardless of backend.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key.
//
// Get reports a miss as (nil, false, nil); an error means the backend itself
// failed. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default time-to-live per entry kind.
const (
	TTLLayout    = 7 * 24 * time.Hour
	TTLArtifact  = 7 * 24 * time.Hour
	TTLStopwords = 24 * time.Hour
)
