// Package cache is a JSON read-through cache on Redis. A nil *Redis is a
// valid, always-missing cache, so callers never branch on availability.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodtruck-labs/foodtruck/pkg/metrics"
)

type Redis struct {
	rdb      *redis.Client
	keyspace string
}

// Connect dials addr and pings it. keyspace prefixes every key and labels
// the hit/miss metrics.
func Connect(ctx context.Context, addr, password, keyspace string) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping %s: %w", addr, err)
	}
	return &Redis{rdb: rdb, keyspace: keyspace}, nil
}

func (c *Redis) key(k string) string { return c.keyspace + ":" + k }

// Get decodes the value at key into dest and reports a hit.
func (c *Redis) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	val, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil || json.Unmarshal(val, dest) != nil {
		metrics.CacheMisses.WithLabelValues(c.keyspace).Inc()
		return false
	}
	metrics.CacheHits.WithLabelValues(c.keyspace).Inc()
	return true
}

func (c *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return c.rdb.Set(ctx, c.key(key), data, ttl).Err()
}

func (c *Redis) Del(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.rdb.Del(ctx, full...).Err()
}

func (c *Redis) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
