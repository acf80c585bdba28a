package sqlite

import (
	"fmt"
)

// migration represents a single database migration.
type migration struct {
	version int
	name    string
	stmts   []string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS tools (
				seq INTEGER PRIMARY KEY AUTOINCREMENT,
				id TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL,
				category_kr TEXT NOT NULL DEFAULT '',
				futurepedia_category TEXT NOT NULL DEFAULT '',
				strength TEXT NOT NULL DEFAULT '',
				strength_kr TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				description_kr TEXT NOT NULL DEFAULT '',
				free INTEGER NOT NULL DEFAULT 0,
				link TEXT NOT NULL DEFAULT '',
				created_at INTEGER NOT NULL,
				updated_at INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS interactions (
				session_id TEXT NOT NULL,
				tool_id TEXT NOT NULL,
				tool_name TEXT NOT NULL DEFAULT '',
				interaction_type TEXT NOT NULL,
				is_favorited INTEGER NOT NULL DEFAULT 0,
				rating INTEGER NOT NULL DEFAULT 0,
				updated_at INTEGER NOT NULL,
				PRIMARY KEY (session_id, tool_id, interaction_type)
			)`,
		},
	},
}

// runMigrations applies every migration newer than the recorded schema version.
func (s *Store) runMigrations() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		return err
	}

	version, err := s.schemaVersion()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if version >= m.version {
			continue
		}

		s.logger.Info("running migration", "version", m.version, "name", m.name)
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		for _, stmt := range m.stmts {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return fmt.Errorf("migration %d failed: %w", m.version, err)
			}
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.version, m.name); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

// schemaVersion returns the highest applied migration version.
func (s *Store) schemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}
