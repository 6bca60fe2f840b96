// Package viscache memoizes default-visibility verdicts behind a soft
// capacity cap, shared by all root calls of one serializer.
package viscache

import (
	"reflect"
	"sync"
)

// DefaultCapacity is the soft cap used when none is configured.
const DefaultCapacity = 1000

// Key identifies one struct field independent of any traversal state.
type Key struct {
	Type reflect.Type
	Name string
}

// Cache is a bounded concurrent memo. Capacity is a soft cap: inserting past
// it evicts exactly one existing entry chosen arbitrarily, not by recency.
// Callers must not rely on which entry survives.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]bool
	max     int
}

func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		entries: make(map[Key]bool, capacity),
		max:     capacity,
	}
}

// Get returns the memoized verdict for k, if present.
func (c *Cache) Get(k Key) (verdict, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[k]
	return v, ok
}

// Put stores a verdict, evicting one arbitrary entry first when the cache is
// at or over capacity. Map range order makes the victim non-deterministic,
// which is all the contract asks for.
func (c *Cache) Put(k Key, verdict bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[k]; ok {
		c.entries[k] = verdict
		return
	}
	if len(c.entries) >= c.max {
		for victim := range c.entries {
			delete(c.entries, victim)
			break
		}
	}
	c.entries[k] = verdict
}

// Len reports the resident entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
