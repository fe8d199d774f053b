package querycache

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// WarmKey is one entry in a refresher schedule: a cache key re-fetched on a
// cron schedule so static-tier reads stay warm. Platform statistics use the
// default daily schedule, replacing the old call-site 24-hour timestamp
// gate.
type WarmKey struct {
	Key   string
	Tier  Tier
	Fetch FetchFunc
	// Spec is a cron expression. Defaults to daily at 03:00.
	Spec string
}

// Refresher re-warms configured cache keys on a schedule. Fetches are paced
// by a rate limiter so a long warm list does not burst against the API.
type Refresher struct {
	cache   *Cache
	cron    *cron.Cron
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewRefresher creates a refresher over the cache. perSecond bounds the
// warm-fetch rate; zero means one fetch per second.
func NewRefresher(cache *Cache, perSecond float64, log zerolog.Logger) *Refresher {
	if perSecond <= 0 {
		perSecond = 1
	}
	return &Refresher{
		cache:   cache,
		cron:    cron.New(),
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		log:     log,
	}
}

// Add schedules a warm key. Returns an error for an invalid cron spec.
func (r *Refresher) Add(key WarmKey) error {
	spec := key.Spec
	if spec == "" {
		spec = "0 3 * * *"
	}

	_, err := r.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := r.limiter.Wait(ctx); err != nil {
			return
		}

		window := r.cache.policy.Window(key.Tier)
		value, err := key.Fetch(ctx)
		if err != nil {
			r.log.Warn().Err(err).Str("key", key.Key).Msg("cache warm fetch failed")
			return
		}
		entry := Entry{Value: value, StoredAt: r.cache.now()}
		if err := r.cache.store.Set(ctx, key.Key, entry, window.Evict); err != nil {
			r.log.Warn().Err(err).Str("key", key.Key).Msg("cache warm write failed")
			return
		}
		r.log.Debug().Str("key", key.Key).Msg("cache key warmed")
	})
	return err
}

// Start begins running the schedule in the background.
func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for running jobs.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}
