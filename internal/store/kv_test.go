package store_test

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

func TestApplyMigrationsIdempotent(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := store.ApplyMigrations(db); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var kvTableCount int
	if err := db.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'kv'`).Scan(&kvTableCount); err != nil {
		t.Fatalf("check kv table: %v", err)
	}
	if kvTableCount != 1 {
		t.Fatalf("expected kv table to exist")
	}
	var migrationCount int
	if err := db.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 1 {
		t.Fatalf("expected 1 migration version, got %d", migrationCount)
	}
}

func TestGetSetRoundtrip(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	found, err := store.Get(db, "bb:missing", &payload{})
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if found {
		t.Fatal("missing key reported as found")
	}

	if err := store.Set(db, "bb:thing", payload{Name: "x", Count: 3}); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got payload
	found, err = store.Get(db, "bb:thing", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found || got.Name != "x" || got.Count != 3 {
		t.Fatalf("unexpected value %+v (found=%v)", got, found)
	}

	// Set overwrites in place.
	if err := store.Set(db, "bb:thing", payload{Name: "y", Count: 4}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if _, err := store.Get(db, "bb:thing", &got); err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if got.Name != "y" {
		t.Fatalf("overwrite did not stick: %+v", got)
	}
}

func TestPrefixOperations(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	seed := map[string]string{
		"bb:targets":            `{"calories":2000}`,
		"bb:entries:2026-03-01": `[]`,
		"bb:entries:2026-03-02": `[]`,
		"other:key":             `1`,
	}
	for k, v := range seed {
		if err := store.SetRaw(db, k, v); err != nil {
			t.Fatalf("seed %s: %v", k, err)
		}
	}

	keys, err := store.Keys(db, store.EntryKeyPrefix)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 entry keys, got %v", keys)
	}

	snapshot, err := store.SnapshotRaw(db, store.Prefix)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snapshot) != 3 {
		t.Fatalf("expected 3 namespaced keys, got %v", snapshot)
	}
	if _, ok := snapshot["other:key"]; ok {
		t.Fatal("snapshot leaked a key outside the prefix")
	}

	if err := store.DeleteByPrefix(db, store.Prefix); err != nil {
		t.Fatalf("delete by prefix: %v", err)
	}
	keys, err = store.Keys(db, store.Prefix)
	if err != nil {
		t.Fatalf("keys after delete: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("namespaced keys remain: %v", keys)
	}
	if _, found, err := store.GetRaw(db, "other:key"); err != nil || !found {
		t.Fatalf("key outside the prefix should survive (found=%v err=%v)", found, err)
	}
}

func TestSetRawAll(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := store.SetRaw(db, "bb:targets", `{"calories":2000}`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.SetRawAll(db, map[string]string{
		"bb:targets": `{"calories":2500}`,
		"bb:foods":   `[]`,
	}); err != nil {
		t.Fatalf("set raw all: %v", err)
	}

	raw, found, err := store.GetRaw(db, "bb:targets")
	if err != nil || !found {
		t.Fatalf("get targets: found=%v err=%v", found, err)
	}
	if raw != `{"calories":2500}` {
		t.Fatalf("targets = %q, want overwritten value", raw)
	}
	if _, found, err := store.GetRaw(db, "bb:foods"); err != nil || !found {
		t.Fatalf("get foods: found=%v err=%v", found, err)
	}
}

func TestSetRawAllOnClosedDBWritesNothing(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bulkbuddy.db")
	sqldb, err := store.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := store.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	sqldb.Close()

	if err := store.SetRawAll(sqldb, map[string]string{"bb:targets": `{}`}); err == nil {
		t.Fatal("expected error writing to a closed db")
	}

	reopened, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopen db: %v", err)
	}
	defer reopened.Close()
	keys, err := store.Keys(reopened, store.Prefix)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("failed batch write left keys behind: %v", keys)
	}
}

func TestEntryKey(t *testing.T) {
	t.Parallel()
	if got := store.EntryKey("2026-03-01"); got != "bb:entries:2026-03-01" {
		t.Fatalf("entry key = %q", got)
	}
}
