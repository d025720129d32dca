package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"bulkbuddy/internal/model"
	"bulkbuddy/internal/service"
	"bulkbuddy/internal/store"
)

func TestCheckIntegrityCleanDB(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.UpsertFood(db, model.PerOunceFood("Chicken", 47, 9, 0, 1)); err != nil {
		t.Fatalf("upsert food: %v", err)
	}
	if _, err := service.AddEntry(db, "2026-03-01", model.ConsumedEntry{Name: "Chicken", Kcal: 188}); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	report, err := service.CheckIntegrity(db)
	if err != nil {
		t.Fatalf("check integrity: %v", err)
	}
	if !report.OK() {
		t.Fatalf("expected clean report, got problems %v", report.Problems)
	}
	if report.CheckedKeys == 0 {
		t.Fatal("expected checked keys > 0")
	}
}

func TestCheckIntegrityFindsUnindexedDate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	// A ledger key written without touching the index.
	if err := store.SetRaw(db, store.EntryKey("2026-03-09"), `[{"name":"Orphan","kcal":100}]`); err != nil {
		t.Fatalf("seed: %v", err)
	}

	report, err := service.CheckIntegrity(db)
	if err != nil {
		t.Fatalf("check integrity: %v", err)
	}
	if report.OK() {
		t.Fatal("expected a problem for the unindexed date")
	}
}

func TestCheckIntegrityFindsUnsupportedFood(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := store.SetRaw(db, store.KeyFoods, `[{"name":"Mystery"}]`); err != nil {
		t.Fatalf("seed: %v", err)
	}

	report, err := service.CheckIntegrity(db)
	if err != nil {
		t.Fatalf("check integrity: %v", err)
	}
	if report.OK() {
		t.Fatal("expected a problem for the shapeless food record")
	}
}

func TestBackupCreateListRestore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "bulkbuddy.db")

	sqldb, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := store.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	if err := service.UpsertFood(sqldb, model.PerOunceFood("Chicken", 47, 9, 0, 1)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sqldb.Close()

	backupPath := filepath.Join(dir, "backups", "snap.db")
	info, err := service.CreateBackup(dbPath, backupPath)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.Checksum == "" || info.SizeBytes == 0 {
		t.Fatalf("incomplete backup info %+v", info)
	}
	if _, err := os.Stat(backupPath + ".sha256"); err != nil {
		t.Fatalf("checksum sidecar missing: %v", err)
	}

	backups, err := service.ListBackups(filepath.Join(dir, "backups"))
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(backups) != 1 || backups[0].Checksum != info.Checksum {
		t.Fatalf("unexpected backup list %+v", backups)
	}

	restored := filepath.Join(dir, "restored.db")
	if err := service.RestoreBackup(backupPath, restored, false); err != nil {
		t.Fatalf("restore: %v", err)
	}
	// Restoring over an existing file needs force.
	if err := service.RestoreBackup(backupPath, restored, false); err == nil {
		t.Fatal("expected error restoring over an existing db without force")
	}
	if err := service.RestoreBackup(backupPath, restored, true); err != nil {
		t.Fatalf("forced restore: %v", err)
	}

	check, err := store.Open(restored)
	if err != nil {
		t.Fatalf("open restored: %v", err)
	}
	defer check.Close()
	foods, err := service.ListFoods(check)
	if err != nil {
		t.Fatalf("foods from restored db: %v", err)
	}
	if len(foods) != 1 || foods[0].Name != "Chicken" {
		t.Fatalf("restored data wrong: %+v", foods)
	}
}

func TestRestoreBackupChecksumMismatch(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	backupPath := filepath.Join(dir, "snap.db")
	if err := os.WriteFile(backupPath, []byte("data"), 0o644); err != nil {
		t.Fatalf("write backup: %v", err)
	}
	if err := os.WriteFile(backupPath+".sha256", []byte("deadbeef\n"), 0o644); err != nil {
		t.Fatalf("write checksum: %v", err)
	}
	if err := service.RestoreBackup(backupPath, filepath.Join(dir, "out.db"), true); err == nil {
		t.Fatal("expected checksum mismatch error")
	}
}
