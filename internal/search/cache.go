package search

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a bounded key/value store whose entries expire after a fixed TTL.
// Capacity pressure evicts the least recently used entry (the documented
// eviction policy); expiry is checked lazily on Get. The clock is injected
// so tests can drive time.
type Cache[V any] struct {
	mu  sync.Mutex
	lru *lru.Cache[string, cacheEntry[V]]
	ttl time.Duration
	now func() time.Time
}

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewCache builds a cache holding at most capacity entries, each valid for
// ttl after insertion. now may be nil, in which case time.Now is used.
func NewCache[V any](capacity int, ttl time.Duration, now func() time.Time) (*Cache[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d", capacity)
	}
	inner, err := lru.New[string, cacheEntry[V]](capacity)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return &Cache[V]{lru: inner, ttl: ttl, now: now}, nil
}

// Get returns the cached value for key. An entry whose TTL has elapsed is
// treated as a miss and removed.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero V
	entry, ok := c.lru.Get(key)
	if !ok {
		return zero, false
	}
	if !entry.expiresAt.After(c.now()) {
		c.lru.Remove(key)
		return zero, false
	}
	return entry.value, true
}

// Put stores value under key. Entries that would be born expired are never
// stored; that state is impossible under a sane TTL and treating it as a
// miss beats propagating it.
func (c *Cache[V]) Put(key string, value V) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	expiresAt := c.now().Add(c.ttl)
	if !expiresAt.After(c.now()) {
		return
	}
	c.lru.Add(key, cacheEntry[V]{value: value, expiresAt: expiresAt})
}

// Len returns the number of live entries, counting expired ones that have
// not been lazily collected yet.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Purge drops every entry. Used between test cases and when the operator
// forces a refresh.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}
