package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/specwork/specwork-go/internal/metrics"
)

// FetchFunc produces the raw response bytes for a key on miss or staleness.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Cache wraps a Store with tier-based freshness. Two concurrent lookups of
// the same key may both fetch; request deduplication is deliberately not
// part of this layer.
type Cache struct {
	store  Store
	policy Policy
	log    zerolog.Logger
	now    func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithPolicy overrides the default tier windows.
func WithPolicy(policy Policy) Option {
	return func(c *Cache) { c.policy = policy }
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Cache) { c.log = log }
}

// withNow overrides the clock in tests.
func withNow(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a cache over the given store.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		policy: DefaultPolicy(),
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do returns the cached value for key when fresh, refetching otherwise.
// When a refetch of a stale-but-present entry fails, the stale value is
// returned and the error logged (stale-while-error).
func (c *Cache) Do(ctx context.Context, key string, tier Tier, fetch FetchFunc) ([]byte, error) {
	window := c.policy.Window(tier)

	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		// A broken store degrades to fetch-through.
		c.log.Warn().Err(err).Str("key", key).Msg("cache store read failed")
		ok = false
	}

	if ok && c.now().Sub(entry.StoredAt) < window.Fresh {
		metrics.CacheLookup("hit")
		return entry.Value, nil
	}

	value, fetchErr := fetch(ctx)
	if fetchErr != nil {
		if ok {
			metrics.CacheLookup("stale")
			c.log.Warn().Err(fetchErr).Str("key", key).Msg("refetch failed, serving stale value")
			return entry.Value, nil
		}
		metrics.CacheLookup("miss")
		return nil, fetchErr
	}
	metrics.CacheLookup("miss")

	stored := Entry{Value: value, StoredAt: c.now()}
	if err := c.store.Set(ctx, key, stored, window.Evict); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache store write failed")
	}
	return value, nil
}

// Invalidate removes exact keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	removed, err := c.store.Delete(ctx, keys...)
	metrics.CacheInvalidated(removed)
	if err != nil {
		return fmt.Errorf("invalidate keys: %w", err)
	}
	return nil
}

// InvalidatePrefix removes every key with the given prefix.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) error {
	removed, err := c.store.DeletePrefix(ctx, prefix)
	metrics.CacheInvalidated(removed)
	if err != nil {
		return fmt.Errorf("invalidate prefix %q: %w", prefix, err)
	}
	return nil
}

// InvalidateAfter applies the declarative mutation table: every key prefix
// registered for the mutation is dropped so subsequent reads refetch.
func (c *Cache) InvalidateAfter(ctx context.Context, mutation string) error {
	prefixes, ok := MutationInvalidations[mutation]
	if !ok {
		return nil
	}
	for _, prefix := range prefixes {
		if err := c.InvalidatePrefix(ctx, prefix); err != nil {
			return err
		}
	}
	return nil
}

// Cached decodes a cache-or-fetch round trip into T. The fetch result is
// stored as its JSON encoding.
func Cached[T any](ctx context.Context, c *Cache, key string, tier Tier, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	raw, err := c.Do(ctx, key, tier, func(ctx context.Context) ([]byte, error) {
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode cached value: %w", err)
		}
		return data, nil
	})
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("decode cached value: %w", err)
	}
	return out, nil
}
