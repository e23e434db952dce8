package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hitoshi/instportal/internal/database"
)

func TestRun_WithMissingEnv_ReturnsError(t *testing.T) {
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("AUTHORITY_USERS", "")

	var buf bytes.Buffer
	if err := Run(&buf, []string{"serve"}); err == nil {
		t.Fatal("Run with missing env should return error")
	}
}

func TestRun_MigrateCommand_CreatesSchema(t *testing.T) {
	path := setTestEnv(t)

	var buf bytes.Buffer
	if err := Run(&buf, []string{"migrate"}); err != nil {
		t.Fatalf("Run(migrate) error: %v", err)
	}

	db, err := database.Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer db.Close()

	var count int
	err = db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'institutions')`,
	).Scan(&count)
	if err != nil {
		t.Fatalf("schema query error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected users and institutions tables, found %d of 2", count)
	}
}

func TestRun_MigrateCommand_IsIdempotent(t *testing.T) {
	setTestEnv(t)

	var buf bytes.Buffer
	if err := Run(&buf, []string{"migrate"}); err != nil {
		t.Fatalf("first Run(migrate) error: %v", err)
	}
	if err := Run(&buf, []string{"migrate"}); err != nil {
		t.Fatalf("second Run(migrate) error: %v", err)
	}
}

func TestRun_InspectCommand_ListsSchema(t *testing.T) {
	setTestEnv(t)

	var buf bytes.Buffer
	if err := Run(&buf, []string{"migrate"}); err != nil {
		t.Fatalf("Run(migrate) error: %v", err)
	}

	buf.Reset()
	if err := Run(&buf, []string{"inspect"}); err != nil {
		t.Fatalf("Run(inspect) error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "users") || !strings.Contains(out, "institutions") {
		t.Errorf("inspect output missing tables:\n%s", out)
	}
	if !strings.Contains(out, "0 user(s)") {
		t.Errorf("inspect output missing user count:\n%s", out)
	}
}

func TestRun_HealthcheckCommand_NoServer_ReturnsError(t *testing.T) {
	// Nothing listens on the port, so the probe must fail.
	t.Setenv("SERVER_PORT", "59999")

	var buf bytes.Buffer
	if err := Run(&buf, []string{"healthcheck"}); err == nil {
		t.Fatal("Run(healthcheck) without a server should return error")
	}
}
