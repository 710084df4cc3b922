// Package cache provides the request-level cache and deduplicator that
// sits between query functions and the CMS: a TTL-bounded in-memory
// store with single-flight deduplication, so that components rendering
// the same page never issue duplicate network calls for one key.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is an in-memory TTL cache with single-flight fetch dedup.
// Construct one per process and inject it into the query layer; tests
// construct isolated instances. The zero value is not usable, use New.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group

	// now is swappable in tests to simulate expiry.
	now func() time.Time
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// lookup returns a live value for key. Expired entries are evicted
// lazily here; there is no background sweep.
func (c *Cache) lookup(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Remove drops a single entry.
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the current number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetOrFetch returns the cached value for key if a live entry exists,
// otherwise fetches it and stores the result with the given TTL.
// Concurrent callers for the same key share a single in-flight fetch
// and observe the identical result, success or error. A failed fetch
// populates nothing, so the next caller retries immediately.
func GetOrFetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		slog.Debug("cache hit", "key", key)
		return v.(T), nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		// A concurrent flight may have stored the value between our
		// lookup and joining the group.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v, err := fetch(ctx)
		if err != nil {
			slog.Warn("cache fetch failed", "key", key, "error", err)
			return nil, err
		}
		c.store(key, v, ttl)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if shared {
		slog.Debug("cache fetch shared with concurrent caller", "key", key)
	}
	return v.(T), nil
}
