package groupdata

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/roomboard/internal/common"
	"github.com/dmitrijs2005/roomboard/internal/logging"
	"github.com/dmitrijs2005/roomboard/internal/metrics"
	"github.com/dmitrijs2005/roomboard/internal/models"
	"github.com/dmitrijs2005/roomboard/internal/remote"
	"github.com/dmitrijs2005/roomboard/internal/repositories/kv"
)

type Store struct {
	source  remote.Source
	cache   *SnapshotCache
	log     logging.Logger
	metrics *metrics.Collector

	ttl             time.Duration
	refreshInterval time.Duration
	requestTimeout  time.Duration
	now             func() time.Time

	mu        sync.Mutex
	closed    bool
	groupID   string
	data      models.GroupData
	loading   bool
	inflight  int
	err       error
	fetchedAt time.Time
	fromCache bool

	// epoch changes on every activation and on Close; seq numbers fetches
	// across epochs. applied is the seq of the last result taken.
	epoch   uint64
	seq     uint64
	applied uint64

	// version counts snapshot changes; lastMutation maps a task id to the
	// version of its latest optimistic edit.
	version      uint64
	lastMutation map[string]uint64

	stopRefresh context.CancelFunc
	tickers     atomic.Int32

	cacheMu  sync.Mutex
	savedVer uint64
}

// New creates an inactive Store. cache may be nil, in which case nothing is
// read from or written to a local cache.
func New(source remote.Source, cache kv.Repository, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		source:          source,
		log:             log,
		ttl:             common.DefaultCacheTTL,
		refreshInterval: common.DefaultRefreshInterval,
		requestTimeout:  common.DefaultRequestTimeout,
		now:             time.Now,
		data:            models.EmptyGroupData(),
		lastMutation:    map[string]uint64{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if cache != nil {
		s.cache = NewSnapshotCache(cache, s.ttl)
	}
	return s
}

// Activate switches the store to groupID. An empty id clears the snapshot
// and stops the refresh timer without touching the cache or the remote
// source. Otherwise a fresh cache entry is adopted at once, and a fetch and
// the refresh timer are started in the background either way. Activating
// the group that is already active keeps the current snapshot and timer.
func (s *Store) Activate(ctx context.Context, groupID string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return common.ErrStoreClosed
	}
	if groupID != "" && groupID == s.groupID && s.stopRefresh != nil {
		s.mu.Unlock()
		s.log.Debug(ctx, "group already active", "group_id", groupID)
		return nil
	}
	s.stopRefreshLocked()
	s.epoch++
	epoch := s.epoch
	s.groupID = groupID
	s.data = models.EmptyGroupData()
	s.err = nil
	s.fetchedAt = time.Time{}
	s.fromCache = false
	s.loading = groupID != ""
	s.version++
	clear(s.lastMutation)
	s.mu.Unlock()

	if groupID == "" {
		s.log.Debug(ctx, "group deactivated")
		return nil
	}

	cached, savedAt, hit := s.loadCache(ctx, groupID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.epoch != epoch {
		return nil
	}
	if hit {
		s.data = cached
		s.fetchedAt = savedAt
		s.fromCache = true
		s.loading = false
		s.version++
	}

	if t, err := s.beginLocked(); err == nil {
		go func() { _ = s.run(context.Background(), t) }()
	}
	s.startRefreshLocked()
	return nil
}

// Refetch loads the active group from the remote source, bypassing the
// cache, and returns the outcome of that fetch.
func (s *Store) Refetch(ctx context.Context) error {
	return s.fetch(ctx)
}

// State returns the current read model.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		GroupID:   s.groupID,
		Data:      s.data,
		Loading:   s.loading,
		Fetching:  s.inflight > 0,
		Err:       s.err,
		FetchedAt: s.fetchedAt,
		FromCache: s.fromCache,
	}
}

// Close stops the refresh timer. Fetches still in flight complete but their
// results are ignored. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.epoch++
	s.stopRefreshLocked()
	return nil
}

type fetchTicket struct {
	groupID string
	epoch   uint64
	seq     uint64
}

// beginLocked registers a fetch of the active group. s.mu must be held.
func (s *Store) beginLocked() (fetchTicket, error) {
	if s.closed {
		return fetchTicket{}, common.ErrStoreClosed
	}
	if s.groupID == "" {
		return fetchTicket{}, common.ErrNoGroup
	}
	s.seq++
	s.inflight++
	return fetchTicket{groupID: s.groupID, epoch: s.epoch, seq: s.seq}, nil
}

func (s *Store) fetch(ctx context.Context) error {
	s.mu.Lock()
	t, err := s.beginLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.run(ctx, t)
}

// run performs a registered fetch and applies its result unless a newer
// one, another activation or Close got there first.
func (s *Store) run(ctx context.Context, t fetchTicket) error {
	groupID, epoch, seq := t.groupID, t.epoch, t.seq
	log := s.log.With("group_id", groupID, "seq", seq)
	defer func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	start := time.Now()
	r, err := load(ctx, s.source, groupID)

	var (
		data      models.GroupData
		divergent int
	)
	if err == nil {
		data, divergent = Enrich(r.group, r.users, r.images, r.tasks, r.assignments)
	}

	s.mu.Lock()
	if s.closed || epoch != s.epoch || seq <= s.applied {
		s.mu.Unlock()
		s.metrics.ObserveFetch(metrics.ResultStale, time.Since(start))
		log.Debug(ctx, "dropping stale fetch result", "error", err)
		return err
	}
	s.applied = seq
	s.loading = false
	if err != nil {
		s.err = err
		s.mu.Unlock()

		s.metrics.ObserveFetch(metrics.ResultError, time.Since(start))
		log.Error(ctx, "fetch failed", "error", err)
		if errors.Is(err, common.ErrGroupNotFound) && s.cache != nil {
			if cerr := s.cache.Invalidate(context.WithoutCancel(ctx), groupID); cerr != nil {
				log.Warn(ctx, "failed to invalidate cache", "error", cerr)
			}
		}
		return err
	}
	s.data = data
	s.err = nil
	s.fetchedAt = s.now()
	s.fromCache = false
	s.version++
	clear(s.lastMutation)
	ver, fetchedAt := s.version, s.fetchedAt
	s.mu.Unlock()

	s.metrics.ObserveFetch(metrics.ResultOK, time.Since(start))
	if divergent > 0 {
		s.metrics.AssigneeDivergence(divergent)
		log.Warn(ctx, "primary assignee missing from assignments", "tasks", divergent)
	}
	log.Debug(ctx, "snapshot fetched",
		"users", len(data.Users), "images", len(data.Images), "tasks", len(data.Tasks))

	s.saveCache(context.WithoutCancel(ctx), groupID, ver, data, fetchedAt)
	return nil
}

func (s *Store) loadCache(ctx context.Context, groupID string) (models.GroupData, time.Time, bool) {
	if s.cache == nil {
		return models.GroupData{}, time.Time{}, false
	}

	data, savedAt, err := s.cache.Load(ctx, groupID, s.now())
	switch {
	case err == nil:
		s.metrics.CacheLookup(metrics.ResultHit)
		s.log.Debug(ctx, "adopted cached snapshot", "group_id", groupID, "saved_at", savedAt)
		return data, savedAt, true
	case errors.Is(err, common.ErrCacheMiss):
		s.metrics.CacheLookup(metrics.ResultMiss)
	case errors.Is(err, common.ErrCacheExpired):
		s.metrics.CacheLookup(metrics.ResultExpired)
		s.log.Debug(ctx, "cached snapshot expired", "group_id", groupID, "saved_at", savedAt)
	default:
		s.metrics.CacheLookup(metrics.ResultCorrupt)
		s.log.Warn(ctx, "ignoring unreadable cache entry", "group_id", groupID, "error", err)
	}
	return models.GroupData{}, time.Time{}, false
}

// saveCache writes a snapshot unless a newer version was already written.
// Failures are logged only.
func (s *Store) saveCache(ctx context.Context, groupID string, ver uint64, data models.GroupData, now time.Time) {
	if s.cache == nil {
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if ver < s.savedVer {
		return
	}

	if err := s.cache.Save(ctx, groupID, data, now); err != nil {
		s.metrics.CacheWrite(metrics.ResultError)
		s.log.Warn(ctx, "failed to write cache", "group_id", groupID, "error", err)
		return
	}
	s.savedVer = ver
	s.metrics.CacheWrite(metrics.ResultOK)
}
