package groupdata

import (
	"time"

	"github.com/dmitrijs2005/roomboard/internal/metrics"
)

type Option func(*Store)

// WithCacheTTL sets how old a cached snapshot may be and still be adopted.
func WithCacheTTL(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

func WithRefreshInterval(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithRequestTimeout bounds every fetch and remote task update.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithMetrics(m *metrics.Collector) Option {
	return func(s *Store) {
		s.metrics = m
	}
}
