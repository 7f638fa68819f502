package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent, so it
// is safe to run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// One row per (project, team). body is the record JSON.
	`CREATE TABLE IF NOT EXISTS project_records (
		id          TEXT PRIMARY KEY,
		project     TEXT NOT NULL,
		team        TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','archived')),
		body        TEXT NOT NULL,
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE(project, team)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_project_records_status ON project_records(status)`,

	`CREATE TABLE IF NOT EXISTS import_batches (
		id          TEXT PRIMARY KEY,
		record_id   TEXT NOT NULL REFERENCES project_records(id) ON DELETE CASCADE,
		source      TEXT NOT NULL DEFAULT '',
		mode        TEXT NOT NULL CHECK(mode IN ('combined','multi-sheet')),
		sheets      TEXT NOT NULL DEFAULT '',
		replaced    TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_import_batches_record ON import_batches(record_id)`,
}
