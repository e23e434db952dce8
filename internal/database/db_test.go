package database

import (
	"path/filepath"
	"testing"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	if err := RunMigrations(path); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	for _, table := range []string{"users", "institutions"} {
		var name string
		err := db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	if err := RunMigrations(path); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := RunMigrations(path); err != nil {
		t.Fatalf("second run should be a no-op, got: %v", err)
	}
}
