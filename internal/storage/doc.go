// Package storage persists stores, products and comments for shelfd.
//
// A Repository wraps database/sql and runs against SQLite (the pure Go
// modernc.org/sqlite driver) or Postgres (pgx through its database/sql
// adapter). Both dialects share one schema: dates and timestamps are stored as
// text in their wire layouts and statuses by name, so rows read back exactly
// as they were written.
package storage
