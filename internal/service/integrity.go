package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"bulkbuddy/internal/model"
	"bulkbuddy/internal/store"
)

type BackupInfo struct {
	Path      string
	SizeBytes int64
	CreatedAt time.Time
	Checksum  string
}

func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := copyFile(dbPath, outPath); err != nil {
		return BackupInfo{}, err
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type IntegrityReport struct {
	CheckedKeys int
	Problems    []string
}

func (r IntegrityReport) OK() bool {
	return len(r.Problems) == 0
}

// CheckIntegrity validates stored state without modifying it: every
// ledger key must have a well-formed date present in the active-dates
// index, every indexed date must still have a ledger key, and the
// singleton collections must decode. Library records that normalize to
// Unsupported are reported so the user can repair them.
func CheckIntegrity(db *sql.DB) (IntegrityReport, error) {
	report := IntegrityReport{}

	keys, err := store.Keys(db, store.Prefix)
	if err != nil {
		return report, err
	}
	report.CheckedKeys = len(keys)

	var index []string
	if _, err := store.Get(db, store.KeyEntryIndex, &index); err != nil {
		report.Problems = append(report.Problems, fmt.Sprintf("active-dates index does not decode: %v", err))
	}
	indexed := make(map[string]bool, len(index))
	for _, d := range index {
		if indexed[d] {
			report.Problems = append(report.Problems, fmt.Sprintf("date %s appears in the index more than once", d))
		}
		indexed[d] = true
	}

	for _, key := range keys {
		if !strings.HasPrefix(key, store.EntryKeyPrefix) {
			continue
		}
		date := strings.TrimPrefix(key, store.EntryKeyPrefix)
		if _, err := time.Parse("2006-01-02", date); err != nil {
			report.Problems = append(report.Problems, fmt.Sprintf("ledger key %q has a malformed date", key))
			continue
		}
		if !indexed[date] {
			report.Problems = append(report.Problems, fmt.Sprintf("date %s has entries but is missing from the index", date))
		}
		var entries []model.ConsumedEntry
		if _, err := store.Get(db, key, &entries); err != nil {
			report.Problems = append(report.Problems, fmt.Sprintf("entries for %s do not decode: %v", date, err))
		}
	}
	for _, d := range index {
		if raw, found, err := store.GetRaw(db, store.EntryKey(d)); err != nil || !found || !json.Valid([]byte(raw)) {
			report.Problems = append(report.Problems, fmt.Sprintf("indexed date %s has no readable ledger key", d))
		}
	}

	var profile model.TargetProfile
	if _, err := store.Get(db, store.KeyTargets, &profile); err != nil {
		report.Problems = append(report.Problems, fmt.Sprintf("target profile does not decode: %v", err))
	}
	var weights []model.WeightObservation
	if _, err := store.Get(db, store.KeyWeights, &weights); err != nil {
		report.Problems = append(report.Problems, fmt.Sprintf("weight log does not decode: %v", err))
	}
	var cfg model.ReminderConfig
	if _, err := store.Get(db, store.KeyReminders, &cfg); err != nil {
		report.Problems = append(report.Problems, fmt.Sprintf("reminder config does not decode: %v", err))
	}

	foods, err := ListFoods(db)
	if err != nil {
		report.Problems = append(report.Problems, fmt.Sprintf("food library does not decode: %v", err))
	}
	for _, rec := range foods {
		if _, err := Normalize(rec); err != nil {
			report.Problems = append(report.Problems, fmt.Sprintf("food %q has an unsupported format", rec.Name))
		}
	}

	return report, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Sync()
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
