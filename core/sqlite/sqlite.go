// Package sqlite opens the analysis store database with either the
// pure Go driver (modernc.org/sqlite) or the CGO one (mattn/go-sqlite3).
//
// Build modes:
//   - Default (CGO_ENABLED=0): modernc.org/sqlite
//   - CGO mode (CGO_ENABLED=1 -tags cgo_sqlite): mattn/go-sqlite3
//
// Use Open instead of sql.Open: the two drivers register under
// different names and take their pragmas in different DSN dialects.
package sqlite

import (
	"database/sql"
)

// DriverName returns the registered SQL driver name.
func DriverName() string {
	return driverName
}

// IsCGO reports whether the CGO driver is compiled in.
func IsCGO() bool {
	return driverType == "cgo"
}

// Open opens a SQLite database at path, configured for the analysis
// store: foreign keys enforced, WAL journaling so the corpus watcher
// can write runs while API requests read, and a busy timeout to ride
// out the overlap.
func Open(path string) (*sql.DB, error) {
	return sql.Open(driverName, dsn(path))
}
