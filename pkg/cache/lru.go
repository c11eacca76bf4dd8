// Package cache provides the in-process memoization layer shared by every
// computation stage: a bounded generic LRU store with lazy TTL expiry, a
// memoize wrapper for pure functions, and a stable content hash for keys.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[K comparable, V any] struct {
	key       K
	value     V
	createdAt time.Time
}

// LRU is a bounded least-recently-used cache with per-store TTL.
// Expired entries are treated as absent on read (lazy expiry, no sweeper).
// Safe for concurrent use; concurrent writers for the same key resolve
// last-write-wins, which is safe because every writer of a given key
// computes the same deterministic value.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration // 0 = no expiry
	order    *list.List    // front = most recently used
	items    map[K]*list.Element
	now      func() time.Time
}

// New creates an LRU with the given capacity and TTL. Capacity must be
// positive; ttl of zero disables expiry.
func New[K comparable, V any](capacity int, ttl time.Duration) *LRU[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRU[K, V]{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		items:    make(map[K]*list.Element, capacity),
		now:      time.Now,
	}
}

// Get returns the cached value and refreshes its recency. Expired entries
// are removed and reported as absent.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		return zero, false
	}

	en := el.Value.(*entry[K, V])
	if c.ttl > 0 && c.now().Sub(en.createdAt) >= c.ttl {
		c.order.Remove(el)
		delete(c.items, key)
		return zero, false
	}

	c.order.MoveToFront(el)
	return en.value, true
}

// Put stores a value, evicting the least recently used entry on overflow.
// At most one value is retained per key.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		en := el.Value.(*entry[K, V])
		en.value = value
		en.createdAt = c.now()
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry[K, V]{key: key, value: value, createdAt: c.now()})
	c.items[key] = el

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry[K, V]).key)
		}
	}
}

// Len returns the number of retained entries, including not-yet-collected
// expired ones.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Purge drops every entry.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[K]*list.Element, c.capacity)
}
