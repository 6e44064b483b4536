// Package kv implements the local cache key/value repository.
//
// Two backends are provided:
//   - SQLiteRepository: a single "cache" table in a modernc.org/sqlite
//     database, created by the embedded goose migrations (see InitSQLite).
//   - BadgerRepository: an embedded badger/v4 store (see OpenBadger),
//     optionally in memory.
//
// Both satisfy Repository. Writes of several keys go through SetMany so a
// snapshot and its timestamp are never persisted separately.
package kv
