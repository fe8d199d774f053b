// Package metrics exposes Prometheus collectors for the SDK's request core,
// query cache, and realtime manager.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Registry holds the SDK-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "specwork",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of API requests issued.",
		},
		[]string{"method", "resource", "status"},
	)

	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "specwork",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of API requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "resource"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "specwork",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Query cache lookups by outcome (hit, stale, miss).",
		},
		[]string{"outcome"},
	)

	cacheInvalidations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "specwork",
			Subsystem: "cache",
			Name:      "invalidations_total",
			Help:      "Total number of cache keys invalidated.",
		},
	)

	realtimeEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "specwork",
			Subsystem: "realtime",
			Name:      "events_total",
			Help:      "Realtime events received, by event name.",
		},
		[]string{"event"},
	)

	realtimeDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "specwork",
			Subsystem: "realtime",
			Name:      "dropped_events_total",
			Help:      "Events dropped by defensive payload filtering.",
		},
	)
)

func init() {
	Registry.MustRegister(
		apiRequests,
		apiDuration,
		cacheLookups,
		cacheInvalidations,
		realtimeEvents,
		realtimeDropped,
	)
}

// RequestTimer observes one in-flight API request.
type RequestTimer struct {
	method   string
	resource string
	start    time.Time
}

// StartRequest begins timing an API request.
func StartRequest(method, resource string) *RequestTimer {
	return &RequestTimer{method: method, resource: resource, start: time.Now()}
}

// Done records the request outcome. A status of 0 means the request never
// produced a response (transport error).
func (t *RequestTimer) Done(status int) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	apiRequests.WithLabelValues(t.method, t.resource, label).Inc()
	apiDuration.WithLabelValues(t.method, t.resource).Observe(time.Since(t.start).Seconds())
}

// CacheLookup records a cache lookup outcome: "hit", "stale", or "miss".
func CacheLookup(outcome string) {
	cacheLookups.WithLabelValues(outcome).Inc()
}

// CacheInvalidated records n invalidated cache keys.
func CacheInvalidated(n int) {
	cacheInvalidations.Add(float64(n))
}

// RealtimeEvent records a dispatched realtime event.
func RealtimeEvent(event string) {
	realtimeEvents.WithLabelValues(event).Inc()
}

// RealtimeDropped records an event rejected by payload filtering.
func RealtimeDropped() {
	realtimeDropped.Inc()
}
