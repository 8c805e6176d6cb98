// Package cache holds the in-process and S3 caches that sit in front of the
// upstream forecast, tide, and spot APIs.
package cache

import (
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// lruEntry wraps the cached value with its expiry
type lruEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is a size-bounded LRU whose entries also expire after a fixed TTL.
// It is safe for concurrent use.
type TTLCache[K comparable, V any] struct {
	lru    *lru.Cache[K, *lruEntry[V]]
	ttl    time.Duration
	clock  clock
	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewTTLCache[K comparable, V any](size int, ttl time.Duration) (*TTLCache[K, V], error) {
	return newTTLCache[K, V](size, ttl, systemClock{})
}

func newTTLCache[K comparable, V any](size int, ttl time.Duration, c clock) (*TTLCache[K, V], error) {
	l, err := lru.New[K, *lruEntry[V]](size)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	return &TTLCache[K, V]{
		lru:   l,
		ttl:   ttl,
		clock: c,
	}, nil
}

// Get returns the live value for key. Expired entries are evicted and count
// as a miss.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	if entry, ok := c.lru.Get(key); ok {
		if c.clock.Now().Before(entry.expiresAt) {
			c.hits.Add(1)
			return entry.value, true
		}
		c.lru.Remove(key)
	}

	c.misses.Add(1)
	var zero V
	return zero, false
}

func (c *TTLCache[K, V]) Add(key K, value V) {
	c.lru.Add(key, &lruEntry[V]{
		value:     value,
		expiresAt: c.clock.Now().Add(c.ttl),
	})
}

func (c *TTLCache[K, V]) Remove(key K) {
	c.lru.Remove(key)
}

func (c *TTLCache[K, V]) Len() int {
	return c.lru.Len()
}

// Stats returns hit and miss counters
func (c *TTLCache[K, V]) Stats() map[string]uint64 {
	return map[string]uint64{
		"lru_hits":   c.hits.Load(),
		"lru_misses": c.misses.Load(),
	}
}

// Clear removes all entries
func (c *TTLCache[K, V]) Clear() {
	c.lru.Purge()
}
