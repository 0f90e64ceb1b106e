// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/vaughan-dsouza/yatube/internal/db"
)

// Open returns a migrated in-memory database closed at the end of the test.
// A single connection keeps the in-memory database alive and shared.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	conn, err := db.Open("sqlite3", "file::memory:?_foreign_keys=1", db.Options{MaxOpen: 1, MaxIdle: 1})
	if err != nil {
		t.Fatalf("dbtest: open: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("dbtest: migrate: %v", err)
	}
	return conn
}
