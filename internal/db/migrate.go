package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS prompt_log (
		id         TEXT PRIMARY KEY,
		task       TEXT NOT NULL,
		user_input TEXT NOT NULL,
		model      TEXT NOT NULL DEFAULT '',
		success    INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_prompt_log_created ON prompt_log(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_prompt_log_task ON prompt_log(task)`,
}
