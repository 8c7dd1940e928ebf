package store

import (
	"database/sql"
	"fmt"
	"time"

	"erg-tsb/internal/analysis"
	"erg-tsb/internal/workout"
)

const dateLayout = "2006-01-02"

// Store holds one run's daily table and workouts for report queries
type Store struct {
	db *sql.DB
}

// newStore creates a Store from a database connection.
func newStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDays replaces the daily table
func (s *Store) SaveDays(days []analysis.DailyEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM workouts`); err != nil {
		return fmt.Errorf("clearing workouts: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM daily`); err != nil {
		return fmt.Errorf("clearing daily table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO daily (date, tss, ftp, atl, ctl, tsb)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range days {
		if _, err := stmt.Exec(d.Date.Format(dateLayout), d.TSS, d.FTP, d.ATL, d.CTL, d.TSB); err != nil {
			return fmt.Errorf("inserting %s: %w", d.Date.Format(dateLayout), err)
		}
	}

	return tx.Commit()
}

// SaveWorkouts stores per-workout stress. Every workout date must already be
// in the daily table.
func (s *Store) SaveWorkouts(workouts []workout.Stress) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO workouts (
			path, date, type, duration_s, threshold, mean_power,
			normalized_power, intensity, score, legacy_score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			date = excluded.date,
			type = excluded.type,
			duration_s = excluded.duration_s,
			threshold = excluded.threshold,
			mean_power = excluded.mean_power,
			normalized_power = excluded.normalized_power,
			intensity = excluded.intensity,
			score = excluded.score,
			legacy_score = excluded.legacy_score
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, w := range workouts {
		_, err := stmt.Exec(
			w.Path, w.Date.Format(dateLayout), w.Type.String(), w.DurationSeconds, w.Threshold, w.MeanPower,
			w.NormalizedPower, w.IntensityFactor, w.Score, w.LegacyScore,
		)
		if err != nil {
			return fmt.Errorf("inserting workout %s: %w", w.Path, err)
		}
	}

	return tx.Commit()
}

// parseDate parses a stored YYYY-MM-DD date
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
