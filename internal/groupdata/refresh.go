package groupdata

import (
	"context"
	"time"
)

// startRefreshLocked arms the refresh ticker. s.mu must be held and no
// ticker may be running.
func (s *Store) startRefreshLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopRefresh = cancel
	s.tickers.Add(1)
	go s.refreshLoop(ctx, s.refreshInterval)
}

func (s *Store) stopRefreshLocked() {
	if s.stopRefresh != nil {
		s.stopRefresh()
		s.stopRefresh = nil
	}
}

func (s *Store) refreshLoop(ctx context.Context, interval time.Duration) {
	defer s.tickers.Add(-1)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			// Fetches outlive the ticker; a stopped ticker only means no new ones.
			_ = s.fetch(context.WithoutCancel(ctx))
		}
	}
}
