package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"bulkbuddy/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bulkbuddy.db")
	sqldb, err := store.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := store.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}
