package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis backs the Cache interface with a redis client using SET-with-expiry,
// GET and DEL. A nil client is tolerated: the cache then behaves like Noop,
// which keeps the service functional when Redis is down at startup.
type Redis struct {
	rdb *redis.Client
}

// NewRedis wraps client (may be nil) in a best-effort Cache.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{rdb: client}
}

// Get returns the value stored under key, treating every failure as a miss.
func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.rdb == nil {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("cache get failed", "key", key, "err", err)
		return nil, false
	}
	return val, true
}

// Set stores value under key with the given TTL.
func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if c.rdb == nil {
		return false
	}
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Warn("cache set failed", "key", key, "err", err)
		return false
	}
	return true
}

// Delete removes key, reporting whether an entry existed.
func (c *Redis) Delete(ctx context.Context, key string) bool {
	if c.rdb == nil {
		return false
	}
	n, err := c.rdb.Del(ctx, key).Result()
	if err != nil {
		slog.Warn("cache delete failed", "key", key, "err", err)
		return false
	}
	return n > 0
}

// DeletePrefix scans for prefix* and deletes every match. Used when the job
// catalog changes and all users' cached match slices go stale at once.
func (c *Redis) DeletePrefix(ctx context.Context, prefix string) int {
	if c.rdb == nil {
		return 0
	}

	deleted := 0
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Warn("cache prefix delete failed", "key", iter.Val(), "err", err)
			continue
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		slog.Warn("cache prefix scan failed", "prefix", prefix, "err", err)
	}
	return deleted
}
