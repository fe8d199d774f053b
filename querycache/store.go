package querycache

import (
	"context"
	"time"
)

// Entry is a stored response with its write timestamp. Freshness is judged
// against StoredAt; eviction is enforced by the store's TTL.
type Entry struct {
	Value    []byte
	StoredAt time.Time
}

// Store is the cache backend. The in-memory store serves a single process;
// the Redis store shares entries across processes.
type Store interface {
	// Get returns the entry for key, reporting whether it was present.
	Get(ctx context.Context, key string) (Entry, bool, error)
	// Set writes an entry that expires after ttl.
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	// Delete removes the given keys, returning how many were present.
	Delete(ctx context.Context, keys ...string) (int, error)
	// DeletePrefix removes every key with the given prefix, returning the
	// count removed.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}
