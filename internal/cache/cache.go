// Package cache provides time-bounded memoization of upstream responses,
// keyed by the full call signature. Values are JSON round-tripped so a hit
// never aliases the stored copy.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// sweepThreshold bounds the fallback map: once it grows past this many
// entries a set triggers a sweep of expired ones.
const sweepThreshold = 512

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Cache memoizes producer results under string keys with per-call TTLs.
// Backed by Redis when a client is given; otherwise an in-process TTL map
// with lazy expiry. Safe for concurrent use.
type Cache struct {
	redis *redis.Client

	mu    sync.RWMutex
	local map[string]entry
}

// New creates a Cache. rdb may be nil, in which case entries live in
// process memory only.
func New(rdb *redis.Client) *Cache {
	return &Cache{
		redis: rdb,
		local: make(map[string]entry),
	}
}

// Key builds a canonical cache key from an endpoint path and its parameter
// set. Encode sorts parameters by name, so construction order never matters.
func Key(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}

// Memoize returns the cached value for key when fresh, otherwise invokes
// produce exactly once, stores the result for ttl, and returns it. A failed
// produce stores nothing and the error propagates unmodified.
func Memoize[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, produce func() (T, error)) (T, error) {
	if data, ok := c.get(ctx, key); ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			slog.Debug("cache hit", "key", key)
			return v, nil
		}
		// Undecodable entry, treat as a miss and overwrite below.
	}

	v, err := produce()
	if err != nil {
		var zero T
		return zero, err
	}

	if data, err := json.Marshal(v); err == nil {
		c.set(ctx, key, data, ttl)
	}
	return v, nil
}

func (c *Cache) get(ctx context.Context, key string) ([]byte, bool) {
	if c.redis != nil {
		data, err := c.redis.Get(ctx, key).Bytes()
		if err != nil {
			return nil, false
		}
		return data, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.local[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.local, key)
		return nil, false
	}
	return e.data, true
}

func (c *Cache) set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	if c.redis != nil {
		if err := c.redis.Set(ctx, key, data, ttl).Err(); err != nil {
			slog.Error("failed to set cache", "key", key, "error", err)
		}
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.local) >= sweepThreshold {
		now := time.Now()
		for k, e := range c.local {
			if now.After(e.expiresAt) {
				delete(c.local, k)
			}
		}
	}
	c.local[key] = entry{data: data, expiresAt: time.Now().Add(ttl)}
}
