package app

import (
	"sync"
)

// ============================================================================
// Shared Test Doubles
// ============================================================================

// mockCache implements secondary.ReadCache for testing. It accepts every Put
// (recency is exercised against the real adapter in adapters/memory) and
// records which keys were invalidated.
type mockCache struct {
	mu          sync.Mutex
	entries     map[string]any
	seq         uint64
	invalidated []string
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]any)}
}

func (c *mockCache) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

func (c *mockCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *mockCache) Put(key string, value any, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return true
}

func (c *mockCache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		c.invalidated = append(c.invalidated, key)
	}
}

func (c *mockCache) invalidatedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.invalidated...)
}

func (c *mockCache) wasInvalidated(key string) bool {
	for _, k := range c.invalidatedKeys() {
		if k == key {
			return true
		}
	}
	return false
}
