// Package metrics exposes Prometheus instrumentation for the group data
// store. A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "roomboard"

// Fetch, cache and update outcome labels.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultStale   = "stale"
	ResultHit     = "hit"
	ResultMiss    = "miss"
	ResultExpired = "expired"
	ResultCorrupt = "corrupt"
)

type Collector struct {
	fetches      *prometheus.CounterVec
	fetchSeconds prometheus.Histogram
	cacheLookups *prometheus.CounterVec
	cacheWrites  *prometheus.CounterVec
	updates      *prometheus.CounterVec
	divergences  prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Group snapshot fetches by result.",
		}, []string{"result"}),
		fetchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of group snapshot fetches.",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Local snapshot cache lookups by result.",
		}, []string{"result"}),
		cacheWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_writes_total",
			Help:      "Local snapshot cache writes by result.",
		}, []string{"result"}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_updates_total",
			Help:      "Remote task updates by result.",
		}, []string{"result"}),
		divergences: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignee_divergences_total",
			Help:      "Tasks whose primary assignee is missing from the assignment rows.",
		}),
	}
	reg.MustRegister(c.fetches, c.fetchSeconds, c.cacheLookups, c.cacheWrites, c.updates, c.divergences)
	return c
}

func (c *Collector) ObserveFetch(result string, d time.Duration) {
	if c == nil {
		return
	}
	c.fetches.WithLabelValues(result).Inc()
	if result != ResultStale {
		c.fetchSeconds.Observe(d.Seconds())
	}
}

func (c *Collector) CacheLookup(result string) {
	if c == nil {
		return
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}

func (c *Collector) CacheWrite(result string) {
	if c == nil {
		return
	}
	c.cacheWrites.WithLabelValues(result).Inc()
}

func (c *Collector) TaskUpdate(result string) {
	if c == nil {
		return
	}
	c.updates.WithLabelValues(result).Inc()
}

func (c *Collector) AssigneeDivergence(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.divergences.Add(float64(n))
}

// Handler serves the metrics registered in g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
