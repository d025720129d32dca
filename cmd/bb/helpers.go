package bb

import (
	"database/sql"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"bulkbuddy/internal/app"
	"bulkbuddy/internal/store"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := store.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := store.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	_ = godotenv.Load()
	if v := strings.TrimSpace(os.Getenv("BB_DB")); v != "" {
		return v, nil
	}
	return app.DefaultDBPath()
}
