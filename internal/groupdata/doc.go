// Package groupdata keeps a relationship-enriched snapshot of one household
// fresh in memory.
//
// A Store loads the group record, its users, images, tasks and task
// assignments from a remote.Source, joins them client-side, mirrors the
// result into a local key/value cache with a TTL and re-fetches on a fixed
// interval. Task edits are applied optimistically: the in-memory snapshot
// and the cache change before the remote write is confirmed, and a failed
// write is returned to the caller without reverting the local change
// (UpdateTaskWithRollback is the opt-in alternative).
//
// Every fetch carries a sequence number and the activation epoch it was
// started in; results older than the last applied one, from a previous
// activation, or arriving after Close are dropped.
package groupdata
