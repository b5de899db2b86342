// Package ttlcache is a small in-process cache with per-key freshness.
// It replaces ambient singleton stores: callers construct one, inject it,
// and tests swap the clock.
package ttlcache

import (
	"context"
	"sync"
	"time"
)

// FetchFunc loads the value for a key on miss or expiry.
type FetchFunc[V any] func(ctx context.Context) (V, error)

type entry[V any] struct {
	mu        sync.Mutex
	value     V
	fetchedAt time.Time
	valid     bool
}

// Cache memoizes values per key for a caller-chosen TTL. Concurrent callers
// of the same key share one fetch; different keys never block each other.
type Cache[V any] struct {
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*entry[V]
}

// New builds a cache. A nil clock defaults to time.Now.
func New[V any](now func() time.Time) *Cache[V] {
	if now == nil {
		now = time.Now
	}
	return &Cache[V]{
		now:     now,
		entries: make(map[string]*entry[V]),
	}
}

// GetOrFetch returns the cached value when it is younger than ttl, otherwise
// runs fetch and caches the result. Fetch errors are returned as-is and
// leave any stale value untouched.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc[V]) (V, error) {
	e := c.entryFor(key)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.valid && c.now().Sub(e.fetchedAt) < ttl {
		return e.value, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	e.value = value
	e.fetchedAt = c.now()
	e.valid = true
	return value, nil
}

// Invalidate drops a key so the next read refetches.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Put stores a value directly, stamping it fresh.
func (c *Cache[V]) Put(key string, value V) {
	e := c.entryFor(key)
	e.mu.Lock()
	e.value = value
	e.fetchedAt = c.now()
	e.valid = true
	e.mu.Unlock()
}

func (c *Cache[V]) entryFor(key string) *entry[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry[V]{}
		c.entries[key] = e
	}
	return e
}
