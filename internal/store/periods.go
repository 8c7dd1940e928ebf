package store

import "fmt"

// periodExpr returns the SQL expression labelling a date column by period
func periodExpr(p Period, col string) (string, error) {
	switch p {
	case Week:
		// the Monday on or before the date
		return fmt.Sprintf("date(%s, '-6 days', 'weekday 1')", col), nil
	case Month:
		return fmt.Sprintf("strftime('%%Y-%%m', %s)", col), nil
	case Year:
		return fmt.Sprintf("strftime('%%Y', %s)", col), nil
	default:
		return "", fmt.Errorf("%w: %v", ErrUnknownPeriod, p)
	}
}

// Resample sums daily TSS per period, oldest period first
func (s *Store) Resample(p Period) ([]PeriodTotal, error) {
	dailyLabel, err := periodExpr(p, "date")
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		WITH d AS (
			SELECT %[1]s AS period, date, tss FROM daily
		),
		w AS (
			SELECT %[1]s AS period, COUNT(*) AS n FROM workouts GROUP BY period
		)
		SELECT d.period, MIN(d.date), SUM(d.tss),
			SUM(CASE WHEN d.tss > 0 THEN 1 ELSE 0 END),
			MAX(COALESCE(w.n, 0))
		FROM d
		LEFT JOIN w ON w.period = d.period
		GROUP BY d.period
		ORDER BY d.period ASC
	`, dailyLabel)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("resampling by %v: %w", p, err)
	}
	defer rows.Close()

	var totals []PeriodTotal
	for rows.Next() {
		var t PeriodTotal
		var start string
		if err := rows.Scan(&t.Label, &start, &t.TSS, &t.TrainingDays, &t.Workouts); err != nil {
			return nil, err
		}
		t.Start, err = parseDate(start)
		if err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}
