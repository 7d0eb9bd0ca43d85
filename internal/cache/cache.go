// Package cache is a minimal key/value store with a per-entry TTL.
// There is no capacity bound and no background sweep: an expired entry
// lingers until the next Get for its key evicts it.
package cache

import (
	"sync"
	"time"
)

const DefaultTTL = 60 * time.Second

type entry struct {
	value     any
	expiresAt time.Time
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func New() *Cache {
	return &Cache{
		entries: map[string]entry{},
		now:     time.Now,
	}
}

// Set stores value under key with an absolute expiry of now+ttl.
// A non-positive ttl falls back to DefaultTTL.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Get returns the stored value, or false when the key is absent or
// expired. Reading an expired entry removes it.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}
