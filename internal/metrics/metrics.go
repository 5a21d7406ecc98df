package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers client-side counters: calls against the upstream API and
// hits/misses of the query cache.
type Collector struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamErrors   *prometheus.CounterVec
	upstreamLatency  prometheus.Histogram
	sessionExpiries  prometheus.Counter
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	cacheStale       prometheus.Counter
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webclient_upstream_requests_total",
			Help: "Upstream API requests by bundle and status code",
		}, []string{"bundle", "status"}),
		upstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webclient_upstream_errors_total",
			Help: "Upstream requests that never received a response",
		}, []string{"bundle"}),
		upstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "webclient_upstream_latency_seconds",
			Help:    "Latency of upstream API requests",
			Buckets: prometheus.DefBuckets,
		}),
		sessionExpiries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webclient_session_expiries_total",
			Help: "401 responses that evicted a session",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webclient_cache_hits_total",
			Help: "Query cache hits",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webclient_cache_misses_total",
			Help: "Query cache misses",
		}),
		cacheStale: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webclient_cache_stale_discards_total",
			Help: "Fetch results discarded because their filter key was superseded",
		}),
	}

	c.registry.MustRegister(
		c.upstreamRequests,
		c.upstreamErrors,
		c.upstreamLatency,
		c.sessionExpiries,
		c.cacheHits,
		c.cacheMisses,
		c.cacheStale,
	)

	return c
}

func (c *Collector) RecordUpstream(bundle string, status int, elapsed time.Duration) {
	c.upstreamRequests.WithLabelValues(bundle, strconv.Itoa(status)).Inc()
	c.upstreamLatency.Observe(elapsed.Seconds())
}

func (c *Collector) RecordUnreachable(bundle string) {
	c.upstreamErrors.WithLabelValues(bundle).Inc()
}

func (c *Collector) RecordSessionExpiry() { c.sessionExpiries.Inc() }
func (c *Collector) RecordCacheHit()      { c.cacheHits.Inc() }
func (c *Collector) RecordCacheMiss()     { c.cacheMisses.Inc() }
func (c *Collector) RecordStaleDiscard()  { c.cacheStale.Inc() }

// Handler exposes the collector's registry for the /metrics route.
func (c *Collector) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
}
