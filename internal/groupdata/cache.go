package groupdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/roomboard/internal/common"
	"github.com/dmitrijs2005/roomboard/internal/models"
	"github.com/dmitrijs2005/roomboard/internal/repositories/kv"
)

const snapshotVersion = 1

type envelope struct {
	Version int              `json:"version"`
	GroupID string           `json:"group_id"`
	Data    models.GroupData `json:"data"`
}

// SnapshotCache stores one snapshot per group in a kv.Repository under two
// slots: the encoded snapshot and its write time in milliseconds since the
// epoch.
type SnapshotCache struct {
	kv  kv.Repository
	ttl time.Duration
}

func NewSnapshotCache(repo kv.Repository, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{kv: repo, ttl: ttl}
}

func DataKey(groupID string) string {
	return common.CacheDataKeyPrefix + ":" + groupID
}

func TimestampKey(groupID string) string {
	return common.CacheTimestampKeyPrefix + ":" + groupID
}

// Load returns the cached snapshot of groupID and its write time. The entry
// is adopted only if it is younger than the TTL at now. A missing entry
// yields common.ErrCacheMiss, a stale one common.ErrCacheExpired and an
// unreadable or future-dated one common.ErrCacheCorrupt.
func (c *SnapshotCache) Load(ctx context.Context, groupID string, now time.Time) (models.GroupData, time.Time, error) {
	rawTS, err := c.kv.Get(ctx, TimestampKey(groupID))
	if err != nil {
		return models.GroupData{}, time.Time{}, err
	}
	if rawTS == nil {
		return models.GroupData{}, time.Time{}, common.ErrCacheMiss
	}

	ms, err := strconv.ParseInt(string(rawTS), 10, 64)
	if err != nil {
		return models.GroupData{}, time.Time{}, fmt.Errorf("%w: timestamp %q", common.ErrCacheCorrupt, rawTS)
	}
	savedAt := time.UnixMilli(ms)
	if savedAt.After(now) {
		return models.GroupData{}, time.Time{}, fmt.Errorf("%w: timestamp %d is in the future", common.ErrCacheCorrupt, ms)
	}
	if now.Sub(savedAt) >= c.ttl {
		return models.GroupData{}, savedAt, common.ErrCacheExpired
	}

	raw, err := c.kv.Get(ctx, DataKey(groupID))
	if err != nil {
		return models.GroupData{}, time.Time{}, err
	}
	if raw == nil {
		return models.GroupData{}, time.Time{}, common.ErrCacheMiss
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return models.GroupData{}, time.Time{}, fmt.Errorf("%w: %v", common.ErrCacheCorrupt, err)
	}
	if env.Version != snapshotVersion {
		return models.GroupData{}, time.Time{}, fmt.Errorf("%w: version %d", common.ErrCacheCorrupt, env.Version)
	}
	if env.GroupID != groupID || !env.Data.Valid() || env.Data.Group.ID != groupID {
		return models.GroupData{}, time.Time{}, fmt.Errorf("%w: snapshot of group %q", common.ErrCacheCorrupt, env.GroupID)
	}

	return env.Data, savedAt, nil
}

// Save overwrites both slots of groupID in one write.
func (c *SnapshotCache) Save(ctx context.Context, groupID string, data models.GroupData, now time.Time) error {
	raw, err := json.Marshal(envelope{Version: snapshotVersion, GroupID: groupID, Data: data})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	return c.kv.SetMany(ctx, map[string][]byte{
		DataKey(groupID):      raw,
		TimestampKey(groupID): []byte(strconv.FormatInt(now.UnixMilli(), 10)),
	})
}

// Invalidate drops the cached snapshot of groupID.
func (c *SnapshotCache) Invalidate(ctx context.Context, groupID string) error {
	if err := c.kv.Delete(ctx, TimestampKey(groupID)); err != nil {
		return err
	}
	return c.kv.Delete(ctx, DataKey(groupID))
}
