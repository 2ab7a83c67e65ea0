package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/bannerkit/pkg/observability"
)

// Observed reports cache traffic to the registered observability hooks.
type Observed struct {
	Cache
}

// NewObserved wraps c.
func NewObserved(c Cache) *Observed {
	return &Observed{Cache: c}
}

// Get retrieves a value and reports a hit or miss.
func (o *Observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := o.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, KeyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, KeyType(key))
		}
	}
	return data, ok, err
}

// Set stores a value and reports the write.
func (o *Observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := o.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	return nil
}

// Clear forwards to the wrapped cache when it supports clearing.
func (o *Observed) Clear(ctx context.Context) (int, error) {
	if c, ok := o.Cache.(Clearer); ok {
		return c.Clear(ctx)
	}
	return 0, nil
}

// KeyType extracts the key type from a key built by a [Keyer]: the segment
// just before the hash.
func KeyType(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}
