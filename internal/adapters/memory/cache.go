// Package memory provides the in-process read cache backing the services'
// stale-invalidation and response-recency rules. Nothing here survives the
// process; durable state is limited to the session store.
package memory

import (
	"sync"

	"github.com/example/plumbops/internal/ports/secondary"
)

type entry struct {
	value any
	seq   uint64
}

// Cache implements secondary.ReadCache. A single global sequence orders
// reads and invalidations: Invalidate raises the floor for a key to the
// current sequence, so responses from reads begun earlier can never land.
type Cache struct {
	mu      sync.Mutex
	seq     uint64
	entries map[string]entry
	floor   map[string]uint64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		floor:   make(map[string]uint64),
	}
}

var _ secondary.ReadCache = (*Cache)(nil)

// Begin reserves the next recency sequence.
func (c *Cache) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Get returns the cached value for key, if present.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Put stores value under key unless the response is stale: begun before the
// key's last invalidation, or older than the value already stored.
func (c *Cache) Put(key string, value any, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.floor[key] {
		return false
	}
	if e, ok := c.entries[key]; ok && e.seq > seq {
		return false
	}
	c.entries[key] = entry{value: value, seq: seq}
	return true
}

// Invalidate drops the keys and fences out responses from reads that began
// before this call.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	for _, key := range keys {
		delete(c.entries, key)
		c.floor[key] = c.seq
	}
}

// Reset drops everything. Used when the session changes identity.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	for key := range c.entries {
		delete(c.entries, key)
		c.floor[key] = c.seq
	}
}
