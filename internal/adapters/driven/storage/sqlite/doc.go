// Package sqlite provides the SQLite-backed catalog store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Retrieval combines three primitives in a
// single ranked query:
//
//   - FTS5 full-text matching over the normalized file name (bm25 rank)
//   - LIKE substring containment of the whole normalized query
//   - similarity(a, b), a registered Go function scoring trigram overlap
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// The books_fts table is an external-content index kept in sync with books by
// triggers.
//
// # Data Location
//
// By default, the database is stored at ~/.maktaba/data/catalog.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
