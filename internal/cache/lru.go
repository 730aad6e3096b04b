// Package cache holds computed rankings: an in-process LRU in front of an
// optional shared Redis tier.
package cache

import (
	"sync"
	"time"
)

// LRU is a thread-safe least-recently-used cache with an optional
// per-entry time to live.
type LRU[V any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*lruEntry[V]
	order   []string // oldest first
}

type lruEntry[V any] struct {
	value   V
	expires time.Time // zero: never
}

// NewLRU creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 256. A ttl <= 0 keeps entries until evicted.
func NewLRU[V any](maxSize int, ttl time.Duration) *LRU[V] {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &LRU[V]{
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*lruEntry[V]),
	}
}

// Get retrieves a value from the cache.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if !entry.expires.IsZero() && !c.now().Before(entry.expires) {
		c.remove(key)
		return zero, false
	}

	// Move to end (most recently used)
	c.moveToEnd(key)
	return entry.value, true
}

// Put adds a value to the cache, evicting the oldest if full.
func (c *LRU[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &lruEntry[V]{value: value}
	if c.ttl > 0 {
		entry.expires = c.now().Add(c.ttl)
	}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		c.moveToEnd(key)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = entry
	c.order = append(c.order, key)
}

// Len returns the number of cached entries, expired ones included.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *LRU[V]) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *LRU[V]) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}
