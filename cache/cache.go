// Package cache provides a small TTL cache keyed by request path, used
// to dedupe identical reads. Writes to an entity invalidate the
// matching keys, so readers never see data older than the last write.
package cache

import (
	"strings"
	"sync"
	"time"
)

const DefaultTTL = 30 * time.Second

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Stats is a point-in-time snapshot of cache effectiveness.
type Stats struct {
	Entries       int   `json:"entries"`
	Hits          int64 `json:"hits"`
	Misses        int64 `json:"misses"`
	Invalidations int64 `json:"invalidations"`
}

// TTLCache is safe for concurrent use. Construct it with New and pass
// it by reference; it is not a package-level singleton.
type TTLCache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time

	hits          int64
	misses        int64
	invalidations int64
}

func New(ttl time.Duration) *TTLCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TTLCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (c *TTLCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		if ok {
			delete(c.entries, key)
		}
		c.misses++
		return nil, false
	}
	c.hits++
	return e.value, true
}

func (c *TTLCache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate removes every key with the given prefix and returns how
// many entries were dropped. Handlers call it with the entity's base
// path after every write, which clears both the collection read and any
// per-item reads under it.
func (c *TTLCache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			dropped++
		}
	}
	c.invalidations += int64(dropped)
	return dropped
}

// Flush drops everything.
func (c *TTLCache) Flush() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

func (c *TTLCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	live := 0
	now := c.now()
	for _, e := range c.entries {
		if !now.After(e.expiresAt) {
			live++
		}
	}
	return Stats{
		Entries:       live,
		Hits:          c.hits,
		Misses:        c.misses,
		Invalidations: c.invalidations,
	}
}
