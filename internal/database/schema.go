package database

import "database/sql"

// Schema version for migrations
const currentSchemaVersion = 2

type migration struct {
	version int
	up      []string
}

// SQL migration scripts
var migrations = []migration{
	{
		version: 1,
		up: []string{
			`CREATE TABLE schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,

			// One row per rename/watch pass
			`CREATE TABLE runs (
				id TEXT PRIMARY KEY,
				directory TEXT NOT NULL,
				show_name TEXT NOT NULL,
				embed_titles INTEGER NOT NULL DEFAULT 0,
				started_at TEXT NOT NULL,
				finished_at TEXT,
				renamed INTEGER NOT NULL DEFAULT 0,
				skipped INTEGER NOT NULL DEFAULT 0
			)`,

			// One row per file renamed
			`CREATE TABLE renames (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id TEXT NOT NULL REFERENCES runs(id),
				source_path TEXT NOT NULL,
				target_path TEXT NOT NULL,
				season TEXT NOT NULL,
				episode TEXT NOT NULL,
				executed_at TEXT NOT NULL
			)`,
			`CREATE INDEX idx_renames_run ON renames(run_id)`,

			`INSERT INTO schema_version (version) VALUES (1)`,
		},
	},
	{
		version: 2,
		up: []string{
			// whether the file also moved into a season folder
			`ALTER TABLE renames ADD COLUMN moved INTEGER NOT NULL DEFAULT 0`,
			`ALTER TABLE renames ADD COLUMN size_bytes INTEGER NOT NULL DEFAULT 0`,

			`INSERT INTO schema_version (version) VALUES (2)`,
		},
	},
}

func applyMigrations(db *sql.DB) error {
	var currentVersion int
	err := db.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&currentVersion)
	if err != nil {
		// schema_version doesn't exist yet - this is a fresh database
		currentVersion = 0
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		for _, stmt := range m.up {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return err
			}
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

// SchemaVersion returns the applied schema version.
func (h *HistoryDB) SchemaVersion() (int, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var v int
	err := h.db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&v)
	return v, err
}
