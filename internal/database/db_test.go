package database

import (
	"path/filepath"
	"testing"

	"github.com/hiringdekho/hiring-dekho/internal/config"
	"github.com/hiringdekho/hiring-dekho/internal/models"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "portal.db")
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", SQLitePath: path})
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate error: %v", err)
	}
	for _, m := range models.All() {
		if !db.Migrator().HasTable(m) {
			t.Fatalf("expected table for %T", m)
		}
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	if _, err := Open(config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
