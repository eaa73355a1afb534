package cache

import (
	"context"
	"time"
)

// Disabled is the cache used when caching is turned off. Every Get misses
// and every Set is dropped. Reason records what turned caching off, for
// logging.
type Disabled struct {
	Reason string
}

// Disable returns a cache that stores nothing.
func Disable(reason string) Cache {
	return Disabled{Reason: reason}
}

// DisabledReason reports whether c stores nothing, and why.
func DisabledReason(c Cache) (string, bool) {
	d, ok := c.(Disabled)
	return d.Reason, ok
}

func (Disabled) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Disabled) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Disabled) Delete(context.Context, string) error { return nil }
func (Disabled) Close() error { return nil }

var _ Cache = Disabled{}
