package common

import "time"

// Cache slot prefixes. The group id is appended so that snapshots of
// different households never share a slot.
const (
	CacheDataKeyPrefix      = "group_data"
	CacheTimestampKeyPrefix = "group_data_timestamp"
)

// Defaults for the group data store.
const (
	DefaultCacheTTL        = 5 * time.Minute
	DefaultRefreshInterval = 5 * time.Minute
	DefaultRequestTimeout  = 30 * time.Second
)
