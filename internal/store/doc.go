// Package store persists shopping items.
//
// Every driver exposes the same Store contract:
//
//   - sqlite: modernc.org/sqlite, the default; no cgo needed
//   - sqlite3: github.com/mattn/go-sqlite3 over the same schema
//   - json: a single human-readable file guarded by a flock
//   - memory: an in-process map, used by tests
//
// The SQL layout is one table:
//
//	CREATE TABLE shopping_items (
//		id        INTEGER PRIMARY KEY AUTOINCREMENT,
//		name      TEXT NOT NULL,
//		is_bought INTEGER NOT NULL DEFAULT 0
//	);
//
// AUTOINCREMENT keeps ids monotonic; a deleted id is never handed out again.
// PRAGMA user_version is 1. There are no migrations: a database stamped with a
// newer version is refused with ErrUnsupportedSchema.
package store
