// Package cache provides pluggable byte caches for analysis and render
// artifacts.
//
// Keys are derived from the netlist text plus the options that shaped
// the artifact, so a changed circuit or a changed delay table never
// serves stale results. Three backends are available:
//
//   - FileCache: XDG cache directory, for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
// Get reports a miss with ok == false; errors are reserved for backend
// failures, not absent keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key builds a cache key from a namespace and the parts identifying the
// artifact (netlist text, delay table, render options, ...).
func Key(namespace string, parts ...any) string {
	return hashKey(namespace, parts...)
}
