package store

import "database/sql"

// migrate creates the run tables
func migrate(db *sql.DB) error {
	migrations := []string{
		// One row per calendar day
		`CREATE TABLE IF NOT EXISTS daily (
			date TEXT PRIMARY KEY,
			tss REAL NOT NULL DEFAULT 0,
			ftp INTEGER NOT NULL DEFAULT 0,
			atl REAL NOT NULL,
			ctl REAL NOT NULL,
			tsb REAL NOT NULL
		)`,

		// One row per processed workout log
		`CREATE TABLE IF NOT EXISTS workouts (
			path TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			type TEXT NOT NULL,
			duration_s INTEGER NOT NULL,
			threshold INTEGER NOT NULL,
			mean_power REAL NOT NULL,
			normalized_power REAL NOT NULL,
			intensity REAL NOT NULL,
			score INTEGER NOT NULL,
			legacy_score INTEGER NOT NULL,
			FOREIGN KEY (date) REFERENCES daily(date)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
