package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_CountsByResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.ObserveFetch(ResultOK, 20*time.Millisecond)
	c.ObserveFetch(ResultOK, 30*time.Millisecond)
	c.ObserveFetch(ResultError, time.Millisecond)
	c.ObserveFetch(ResultStale, time.Millisecond)
	c.CacheLookup(ResultHit)
	c.CacheLookup(ResultExpired)
	c.CacheWrite(ResultError)
	c.TaskUpdate(ResultOK)
	c.AssigneeDivergence(2)
	c.AssigneeDivergence(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.fetches.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fetches.WithLabelValues(ResultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fetches.WithLabelValues(ResultStale)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheLookups.WithLabelValues(ResultExpired)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheWrites.WithLabelValues(ResultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.updates.WithLabelValues(ResultOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.divergences))
	assert.Equal(t, 1, testutil.CollectAndCount(c.fetchSeconds))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	c.ObserveFetch(ResultOK, time.Second)
	c.CacheLookup(ResultMiss)
	c.CacheWrite(ResultOK)
	c.TaskUpdate(ResultError)
	c.AssigneeDivergence(1)
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)
	c.CacheLookup(ResultHit)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `roomboard_cache_lookups_total{result="hit"} 1`))
}
