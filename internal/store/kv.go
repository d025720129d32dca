package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// Get unmarshals the value stored under key into out. The bool reports
// whether the key exists; a missing key leaves out untouched.
func Get(db *sql.DB, key string, out any) (bool, error) {
	raw, found, err := GetRaw(db, key)
	if err != nil || !found {
		return found, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return true, fmt.Errorf("decode value for key %q: %w", key, err)
	}
	return true, nil
}

func Set(db *sql.DB, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for key %q: %w", key, err)
	}
	return SetRaw(db, key, string(raw))
}

func GetRaw(db *sql.DB, key string) (string, bool, error) {
	var raw string
	err := db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read key %q: %w", key, err)
	}
	return raw, true, nil
}

const upsertSQL = `
INSERT INTO kv(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`

func SetRaw(db *sql.DB, key, raw string) error {
	if _, err := db.Exec(upsertSQL, key, raw); err != nil {
		return fmt.Errorf("write key %q: %w", key, err)
	}
	return nil
}

// SetRawAll writes every pair in one transaction; either all writes
// land or none do.
func SetRawAll(db *sql.DB, values map[string]string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin batch write: %w", err)
	}
	for key, raw := range values {
		if _, err := tx.Exec(upsertSQL, key, raw); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("write key %q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch write: %w", err)
	}
	return nil
}

func Keys(db *sql.DB, prefix string) ([]string, error) {
	rows, err := db.Query(`SELECT key FROM kv WHERE key LIKE ? || '%' ORDER BY key ASC`, prefix)
	if err != nil {
		return nil, fmt.Errorf("list keys with prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}
	return keys, nil
}

// SnapshotRaw returns every key under prefix mapped to its raw stored
// value, the shape used by bulk export.
func SnapshotRaw(db *sql.DB, prefix string) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM kv WHERE key LIKE ? || '%'`, prefix)
	if err != nil {
		return nil, fmt.Errorf("snapshot keys with prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot rows: %w", err)
	}
	return out, nil
}

func DeleteByPrefix(db *sql.DB, prefix string) error {
	if _, err := db.Exec(`DELETE FROM kv WHERE key LIKE ? || '%'`, prefix); err != nil {
		return fmt.Errorf("delete keys with prefix %q: %w", prefix, err)
	}
	return nil
}
