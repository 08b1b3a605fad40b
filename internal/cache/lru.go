// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package cache

import (
	"sync"
	"time"
)

// EvictReason says why an entry left the cache.
type EvictReason string

// Eviction reasons.
const (
	EvictCapacity EvictReason = "capacity"
	EvictExpired  EvictReason = "expired"
	EvictRemoved  EvictReason = "released"
)

// Default limits applied when NewLRU is given non-positive values.
const (
	DefaultCapacity = 1000
	DefaultTTL      = 30 * time.Minute
)

// EvictFunc observes removals.
type EvictFunc[V any] func(key string, value V, reason EvictReason)

type entry[V any] struct {
	key       string
	value     V
	prev      *entry[V]
	next      *entry[V]
	expiresAt time.Time
}

type eviction[V any] struct {
	key    string
	value  V
	reason EvictReason
}

// LRU is a thread-safe least recently used cache with a sliding TTL.
// Get, Add and Remove are O(1); Sweep walks the list from the oldest end.
//
// It uses a doubly-linked list for ordering and a map for lookups.
type LRU[V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time
	onEvict  EvictFunc[V]

	items map[string]*entry[V]

	// head.next is the most recently used, tail.prev the least.
	head *entry[V]
	tail *entry[V]

	hits   int64
	misses int64
}

// NewLRU creates a cache holding at most capacity entries, each expiring
// ttl after it was last added or read.
func NewLRU[V any](capacity int, ttl time.Duration) *LRU[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[string]*entry[V], capacity),
		head:     &entry[V]{},
		tail:     &entry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// OnEvict registers fn to be called for every removed entry.
func (c *LRU[V]) OnEvict(fn EvictFunc[V]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Get returns the value for key and marks it most recently used.
// An expired entry is evicted and reported as missing.
func (c *LRU[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.Lock()
	e, ok := c.items[key]
	if !ok {
		c.misses++
		c.mu.Unlock()
		return zero, false
	}

	now := c.now()
	if now.After(e.expiresAt) {
		c.removeEntry(e)
		c.misses++
		c.mu.Unlock()
		c.notify([]eviction[V]{{key: e.key, value: e.value, reason: EvictExpired}})
		return zero, false
	}

	e.expiresAt = now.Add(c.ttl)
	c.moveToFront(e)
	c.hits++
	v := e.value
	c.mu.Unlock()
	return v, true
}

// Add inserts or replaces key. A replaced value is reported as removed.
// When the cache is full the least recently used entry is evicted.
func (c *LRU[V]) Add(key string, value V) {
	var evicted []eviction[V]

	c.mu.Lock()
	expiresAt := c.now().Add(c.ttl)

	if e, ok := c.items[key]; ok {
		evicted = append(evicted, eviction[V]{key: key, value: e.value, reason: EvictRemoved})
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
	} else {
		e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
		c.addToFront(e)
		c.items[key] = e

		for len(c.items) > c.capacity {
			oldest := c.tail.prev
			c.removeEntry(oldest)
			evicted = append(evicted, eviction[V]{key: oldest.key, value: oldest.value, reason: EvictCapacity})
		}
	}
	c.mu.Unlock()

	c.notify(evicted)
}

// Remove deletes key. It returns false if key was not present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	e, ok := c.items[key]
	if ok {
		c.removeEntry(e)
	}
	c.mu.Unlock()

	if ok {
		c.notify([]eviction[V]{{key: e.key, value: e.value, reason: EvictRemoved}})
	}
	return ok
}

// Sweep evicts every expired entry and returns how many were removed.
func (c *LRU[V]) Sweep() int {
	var evicted []eviction[V]

	c.mu.Lock()
	now := c.now()
	for e := c.tail.prev; e != c.head; {
		prev := e.prev
		if now.After(e.expiresAt) {
			c.removeEntry(e)
			evicted = append(evicted, eviction[V]{key: e.key, value: e.value, reason: EvictExpired})
		}
		e = prev
	}
	c.mu.Unlock()

	c.notify(evicted)
	return len(evicted)
}

// Clear removes every entry, reporting each as removed.
func (c *LRU[V]) Clear() {
	var evicted []eviction[V]

	c.mu.Lock()
	for e := c.head.next; e != c.tail; e = e.next {
		evicted = append(evicted, eviction[V]{key: e.key, value: e.value, reason: EvictRemoved})
	}
	c.items = make(map[string]*entry[V], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
	c.mu.Unlock()

	c.notify(evicted)
}

// Len returns the number of entries, including expired ones not yet swept.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns hit and miss counts and the current size.
func (c *LRU[V]) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.items)
}

func (c *LRU[V]) notify(evicted []eviction[V]) {
	if len(evicted) == 0 {
		return
	}
	c.mu.Lock()
	fn := c.onEvict
	c.mu.Unlock()
	if fn == nil {
		return
	}
	for _, ev := range evicted {
		fn(ev.key, ev.value, ev.reason)
	}
}

// Internal methods (must be called with lock held)

func (c *LRU[V]) addToFront(e *entry[V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *LRU[V]) moveToFront(e *entry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.addToFront(e)
}

func (c *LRU[V]) removeEntry(e *entry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.items, e.key)
}
