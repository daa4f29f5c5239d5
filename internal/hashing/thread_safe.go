package hashing

import (
	"sync"

	"github.com/lgbarn/position-engine-go/internal/chess"
)

type cacheEntry[V any] struct {
	pos   chess.Position
	value V
}

// Cache maps positions to values under a Zobrist key, with mutex
// protection for concurrent access. Colliding keys are told apart by
// comparing the stored position.
type Cache[V any] struct {
	mu          sync.RWMutex
	entries     map[uint64][]cacheEntry[V]
	size        int
	maxCapacity int
	hits        int
	misses      int
}

// NewCache creates a cache. maxCapacity of 0 means unlimited capacity.
func NewCache[V any](maxCapacity int) *Cache[V] {
	return &Cache[V]{
		entries:     make(map[uint64][]cacheEntry[V]),
		maxCapacity: maxCapacity,
	}
}

// Get returns the value stored for pos.
func (c *Cache[V]) Get(pos chess.Position) (V, bool) {
	key := Key(pos)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries[key] {
		if SamePosition(e.pos, pos) {
			c.hits++
			return e.value, true
		}
	}
	c.misses++
	var zero V
	return zero, false
}

// Add stores value for pos. It returns false if the cache is full; an
// existing entry for pos is replaced.
func (c *Cache[V]) Add(pos chess.Position, value V) bool {
	key := Key(pos)

	c.mu.Lock()
	defer c.mu.Unlock()
	bucket := c.entries[key]
	for i := range bucket {
		if SamePosition(bucket[i].pos, pos) {
			bucket[i].value = value
			return true
		}
	}
	if c.maxCapacity > 0 && c.size >= c.maxCapacity {
		return false
	}
	c.entries[key] = append(bucket, cacheEntry[V]{pos: pos, value: value})
	c.size++
	return true
}

// Len returns the number of stored positions.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.size
}

// IsFull returns true if the cache has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (c *Cache[V]) IsFull() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxCapacity > 0 && c.size >= c.maxCapacity
}

// Stats returns the hit and miss counts.
func (c *Cache[V]) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
