// Package cache stores rendered banner artifacts for the preview server.
//
// Rendering a PNG means a round trip through an external renderer, so the
// server keeps composed documents and captured images keyed by canvas size
// and engine. Three backends implement [Cache]:
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: JSON entries under a local directory with optional TTL
//   - [RedisCache]: a shared Redis instance, for several server replicas
//
// Keys come from a [Keyer]; [NewScopedKeyer] prefixes them so entries from
// different releases or engines never collide. Wrap any backend with
// [NewObserved] to report hits, misses, and writes to the observability
// hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
