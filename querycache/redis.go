package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore shares cache entries across processes through Redis. Entries
// are stored as a small JSON envelope so StoredAt survives the round trip.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore creates a store over an existing Redis client. The prefix
// namespaces SDK keys away from other users of the instance.
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "specwork:cache:"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

type redisEnvelope struct {
	Value    []byte    `json:"v"`
	StoredAt time.Time `json:"at"`
}

// Get returns the entry for key.
func (r *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	data, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if err == redis.Nil {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get: %w", err)
	}

	var env redisEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		// A corrupt envelope is treated as a miss; the next Set repairs it.
		return Entry{}, false, nil
	}
	return Entry{Value: env.Value, StoredAt: env.StoredAt}, true, nil
}

// Set writes an entry with the given TTL.
func (r *RedisStore) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	data, err := json.Marshal(redisEnvelope{Value: entry.Value, StoredAt: entry.StoredAt})
	if err != nil {
		return fmt.Errorf("marshal cache envelope: %w", err)
	}
	if err := r.rdb.Set(ctx, r.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the given keys.
func (r *RedisStore) Delete(ctx context.Context, keys ...string) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = r.prefix + key
	}
	removed, err := r.rdb.Del(ctx, prefixed...).Result()
	if err != nil {
		return 0, fmt.Errorf("redis del: %w", err)
	}
	return int(removed), nil
}

// DeletePrefix removes every key with the given prefix via SCAN.
func (r *RedisStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	pattern := r.prefix + prefix + "*"
	removed := 0

	var cursor uint64
	for {
		keys, next, err := r.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return removed, fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			n, err := r.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("redis del: %w", err)
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}
