package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the SQLite database at path.
// Foreign keys are enabled and concurrent writers wait on the file lock
// instead of failing immediately. sql.Open does not touch the file, so use
// db.Ping() to verify the store is actually reachable.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer per database file. Serializing access
	// through one connection avoids SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	return db, nil
}
