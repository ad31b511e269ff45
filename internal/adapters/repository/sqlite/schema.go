package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the device database at path and makes sure the schema exists.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One writer per device; a single connection also keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// CreateSchema creates the ballot tables. Safe to call multiple times.
func CreateSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS ballots (
    seq INTEGER NOT NULL,
    id TEXT PRIMARY KEY,
    ts TEXT NOT NULL DEFAULT '',
    voter_name TEXT NOT NULL DEFAULT '',
    voter_phone TEXT NOT NULL DEFAULT '',
    choices TEXT NOT NULL DEFAULT '{}',
    note TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_ballots_seq ON ballots(seq);

CREATE TABLE IF NOT EXISTS device_state (
    singleton INTEGER PRIMARY KEY CHECK (singleton = 1),
    has_voted INTEGER NOT NULL DEFAULT 0,
    receipt TEXT NOT NULL DEFAULT ''
);
`
