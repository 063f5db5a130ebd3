// Package store provides durable key-value storage for TaskFlow client state.
//
// It contains concrete implementations of domain.KV:
//   - FileKV: a JSON map on disk, replaced atomically on every write
//   - SQLiteKV: a single-table SQLite database
//   - MemoryKV: process-local, for tests and the "memory" storage backend
//
// All methods are concurrency-safe via internal locking. Files live under the
// user's configured home directory.
package store
