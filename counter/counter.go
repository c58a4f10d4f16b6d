// Package counter provides monotonic per-key counters, used by fetch to
// track how many times a URL is requested.
package counter

import (
	"context"
	"time"
)

// Store abstracts where counters live.
// Use LocalStore (default) for in-process counts, or RedisStore for distributed counts.
type Store interface {
	// Incr atomically increments and returns the new count.
	Incr(ctx context.Context, key string) (uint64, error)
	// Value returns the current count; missing => 0.
	Value(ctx context.Context, key string) (uint64, error)
	// ValueMany returns counts for many keys; missing => 0.
	ValueMany(ctx context.Context, keys []string) (map[string]uint64, error)
	// Cleanup prunes old counters if applicable (no-op for Redis).
	Cleanup(retention time.Duration)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}
