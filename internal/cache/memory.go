package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process TTL cache with the same contract as Redis.
// Used in tests and when the service runs without a Redis URL in
// development. Entries are lost on restart.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Get returns a fresh entry's value. Expired entries are removed lazily and
// reported as a miss, so expiry and absence are indistinguishable.
func (c *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl.
func (c *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) bool {
	c.mu.Lock()
	c.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return true
}

// Delete removes key, reporting whether an entry existed.
func (c *Memory) Delete(_ context.Context, key string) bool {
	c.mu.Lock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	c.mu.Unlock()
	return ok
}

// DeletePrefix removes every key starting with prefix.
func (c *Memory) DeletePrefix(_ context.Context, prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	deleted := 0
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			deleted++
		}
	}
	return deleted
}
