// Package cache provides the best-effort TTL cache in front of the scoring
// engine's aggregate output.
//
// Cache failures must never block or fail a scoring request: every
// implementation degrades to "miss" on read problems and "no-op" on write
// problems, reporting success as a boolean instead of an error.
package cache

import (
	"context"
	"time"
)

// Key prefixes — one place, so invalidation patterns and entry keys cannot
// drift apart.
const (
	// UserMatchesPrefix namespaces all per-user match entries.
	UserMatchesPrefix = "user_matches:"
)

// UserMatchesKey returns the cache key holding a user's ranked match slice.
func UserMatchesKey(userID string) string {
	return UserMatchesPrefix + userID
}

// Cache is a TTL key-value store with explicit invalidation. Absence and
// expiry are indistinguishable to callers — both are a miss.
type Cache interface {
	// Get returns the stored value and true on a fresh hit.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key for ttl. Returns false when the write
	// could not be performed.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool
	// Delete removes key. Returns true when an entry was actually removed.
	Delete(ctx context.Context, key string) bool
	// DeletePrefix removes every key starting with prefix and returns the
	// number of entries removed.
	DeletePrefix(ctx context.Context, prefix string) int
}

// Noop is the null-object Cache used when no backing store is configured:
// every read misses, every write is accepted and dropped.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool)              { return nil, false }
func (Noop) Set(context.Context, string, []byte, time.Duration) bool { return false }
func (Noop) Delete(context.Context, string) bool                     { return false }
func (Noop) DeletePrefix(context.Context, string) int                { return 0 }
