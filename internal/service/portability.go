package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"bulkbuddy/internal/store"
)

// ExportSnapshot returns every key in the bb: namespace mapped to its
// raw stored JSON, the flat shape written to export files.
func ExportSnapshot(db *sql.DB) (map[string]string, error) {
	return store.SnapshotRaw(db, store.Prefix)
}

// ImportSnapshot writes each key verbatim. The whole payload is
// validated up front and written in a single transaction, so a
// malformed payload or a failed write leaves the store unchanged;
// existing keys not present in the payload are left alone.
func ImportSnapshot(db *sql.DB, payload map[string]string) error {
	if len(payload) == 0 {
		return fmt.Errorf("import payload is empty")
	}
	for key, raw := range payload {
		if !strings.HasPrefix(key, store.Prefix) {
			return fmt.Errorf("import key %q is outside the %s namespace", key, store.Prefix)
		}
		if !json.Valid([]byte(raw)) {
			return fmt.Errorf("import value for key %q is not valid JSON", key)
		}
	}
	return store.SetRawAll(db, payload)
}

// ClearAll deletes the entire bb: namespace.
func ClearAll(db *sql.DB) error {
	return store.DeleteByPrefix(db, store.Prefix)
}
