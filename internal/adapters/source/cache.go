package source

import (
	"context"
	"sync"
	"time"

	"github.com/okian/wcarank/pkg/metrics"
)

// CachedLoader keeps the last Dataset returned by another Loader.
//
// Entries expire after the TTL; a TTL of zero or less never expires. Failed
// loads are not cached. Loads are serialised so concurrent callers trigger
// at most one fetch.
type CachedLoader struct {
	mu       sync.Mutex
	next     Loader
	ttl      time.Duration
	now      func() time.Time
	cached   *Dataset
	loadedAt time.Time
}

// CacheOption applies a configuration option to the CachedLoader.
type CacheOption func(*CachedLoader)

// WithTTL sets how long a cached dataset stays valid.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *CachedLoader) {
		c.ttl = ttl
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) CacheOption {
	return func(c *CachedLoader) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCachedLoader wraps next with a cache.
func NewCachedLoader(next Loader, opts ...CacheOption) *CachedLoader {
	c := &CachedLoader{next: next, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load implements Loader.
func (c *CachedLoader) Load(ctx context.Context) (Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && (c.ttl <= 0 || c.now().Sub(c.loadedAt) < c.ttl) {
		metrics.RecordCacheHit()
		return *c.cached, nil
	}
	metrics.RecordCacheMiss()

	ds, err := c.next.Load(ctx)
	if err != nil {
		return Dataset{}, err
	}
	c.cached = &ds
	c.loadedAt = c.now()
	return ds, nil
}

// Invalidate drops the cached dataset so the next Load fetches again.
func (c *CachedLoader) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
}

// Cached reports whether a dataset is currently held.
func (c *CachedLoader) Cached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached != nil
}
