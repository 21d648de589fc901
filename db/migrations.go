package db

import (
	"database/sql"
	"fmt"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// Migration represents a database migration
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// migrations list all database migrations in order
var migrations = []Migration{
	{
		Version:     1,
		Description: "Create documents and preferences",
		SQL: `
			-- Last texts typed into the editor panes, keyed by document name
			CREATE TABLE IF NOT EXISTS documents (
				name TEXT PRIMARY KEY,
				original TEXT NOT NULL,
				modified TEXT NOT NULL,
				ignore_whitespace BOOLEAN NOT NULL DEFAULT false,
				view_mode TEXT NOT NULL DEFAULT 'unified' CHECK (view_mode IN ('unified', 'split')),
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);

			CREATE TABLE IF NOT EXISTS diff_preferences (
				user_id TEXT PRIMARY KEY,
				default_mode TEXT NOT NULL CHECK (default_mode IN ('unified', 'split')),
				ignore_whitespace BOOLEAN NOT NULL DEFAULT false,
				context_lines INTEGER NOT NULL DEFAULT 3,
				word_wrap BOOLEAN NOT NULL DEFAULT false,
				show_line_numbers BOOLEAN NOT NULL DEFAULT true,
				algorithm TEXT NOT NULL DEFAULT 'myers',
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
	{
		Version:     2,
		Description: "Create diff history",
		SQL: `
			CREATE SEQUENCE IF NOT EXISTS diff_history_id_seq;
			CREATE TABLE IF NOT EXISTS diff_history (
				id INTEGER PRIMARY KEY DEFAULT nextval('diff_history_id_seq'),
				title TEXT NOT NULL,
				original TEXT NOT NULL,
				modified TEXT NOT NULL,
				options STRUCT(ignore_whitespace BOOLEAN, algorithm VARCHAR) NOT NULL,
				added INTEGER NOT NULL,
				removed INTEGER NOT NULL,
				diff_text TEXT NOT NULL,
				content_hash TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_diff_history_created ON diff_history(created_at);
		`,
	},
}

// Migrate runs all pending database migrations
func (db *DB) Migrate() error {
	// First, ensure migrations table exists
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return serr.Wrap(err, "failed to create migrations table")
	}

	// Get current version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM migrations").Scan(&currentVersion)
	if err != nil {
		return serr.Wrap(err, "failed to get current migration version")
	}

	logger.Debug("Current migration version", "version", currentVersion)

	// Apply pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		logger.Info("Applying migration", "version", migration.Version, "description", migration.Description)

		err := db.Transaction(func(tx *sql.Tx) error {
			if _, err := tx.Exec(migration.SQL); err != nil {
				return serr.Wrap(err, fmt.Sprintf("failed to execute migration %d", migration.Version))
			}

			_, err := tx.Exec(
				"INSERT INTO migrations (version, description) VALUES (?, ?)",
				migration.Version, migration.Description,
			)
			if err != nil {
				return serr.Wrap(err, "failed to record migration")
			}

			return nil
		})

		if err != nil {
			return err
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM migrations").Scan(&version); err != nil {
		return 0, serr.Wrap(err, "failed to get migration version")
	}
	return version, nil
}
