package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"erg-tsb/internal/analysis"
	"erg-tsb/internal/logger"
	"erg-tsb/internal/threshold"
	"erg-tsb/internal/workout"
)

// Options fixes the inputs of one aggregation run
type Options struct {
	LogDir     string
	StartDate  time.Time // logs dated before this are ignored
	EndDate    time.Time // last calendar day, inclusive
	DateOffset int       // where YYYY-MM-DD starts in a log file name
	Workers    int
}

// Result is the outcome of a successful run
type Result struct {
	Days     []analysis.DailyEntry
	Workouts []workout.Stress // in discovery order
	Skipped  int              // logs outside the calendar
}

// Aggregator turns a directory of workout logs into a daily load table
type Aggregator struct {
	opts     Options
	model    analysis.LoadModel
	schedule *threshold.Schedule
}

// NewAggregator creates an aggregator. The end date is taken as given so that
// two runs with the same options see the same calendar.
func NewAggregator(opts Options, model analysis.LoadModel, schedule *threshold.Schedule) *Aggregator {
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	return &Aggregator{opts: opts, model: model, schedule: schedule}
}

// Run builds the calendar, scores every log in range and smooths the daily
// totals. Any failing log aborts the run; no partial table is returned.
func (a *Aggregator) Run(ctx context.Context) (*Result, error) {
	if err := a.model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid load model: %w", err)
	}

	days := analysis.NewCalendar(a.opts.StartDate, a.opts.EndDate)
	if days == nil {
		return nil, fmt.Errorf("end date %s is before start date %s",
			a.opts.EndDate.Format(analysis.DateKey), a.opts.StartDate.Format(analysis.DateKey))
	}
	analysis.FillThreshold(days, a.schedule)
	if first, ok := a.schedule.First(); !ok || first.Date.After(days[0].Date) {
		logger.Warn("threshold power undefined at start of range; workouts before the first entry will fail",
			"start", days[0].Date.Format(analysis.DateKey), "entries", a.schedule.Len())
	}

	paths, skipped, err := a.logsInRange(days)
	if err != nil {
		return nil, err
	}
	logger.Info("scoring workout logs", "logs", len(paths), "skipped", skipped, "workers", a.opts.Workers)

	workouts, err := a.score(ctx, paths)
	if err != nil {
		return nil, err
	}

	for _, w := range workouts {
		i, ok := analysis.IndexOf(days, w.Date)
		if !ok {
			return nil, fmt.Errorf("workout %s dated %s outside calendar", w.Path, w.Date.Format(analysis.DateKey))
		}
		days[i].TSS += float64(w.Score)
	}

	a.model.Apply(days)

	if latest, ok := analysis.Latest(days); ok {
		logger.Info("training load computed",
			"days", len(days),
			"workouts", len(workouts),
			"ctl", fmt.Sprintf("%.1f", latest.CTL),
			"atl", fmt.Sprintf("%.1f", latest.ATL),
			"tsb", fmt.Sprintf("%.1f", latest.TSB),
		)
	}

	return &Result{Days: days, Workouts: workouts, Skipped: skipped}, nil
}

// logsInRange discovers logs and keeps those whose file name date falls in
// the calendar
func (a *Aggregator) logsInRange(days []analysis.DailyEntry) ([]string, int, error) {
	all, err := workout.Discover(a.opts.LogDir)
	if err != nil {
		return nil, 0, fmt.Errorf("discovering workout logs: %w", err)
	}

	var paths []string
	skipped := 0
	for _, path := range all {
		date, err := workout.DateFromFilename(filepath.Base(path), a.opts.DateOffset)
		if err != nil {
			return nil, 0, &workout.LogError{Path: path, Err: err}
		}
		if _, ok := analysis.IndexOf(days, date); !ok {
			logger.Debug("skipping log outside date range", "path", path, "date", date.Format(analysis.DateKey))
			skipped++
			continue
		}
		paths = append(paths, path)
	}
	return paths, skipped, nil
}

// score reads and scores logs in parallel. Each worker owns one result slot,
// so the output keeps discovery order.
func (a *Aggregator) score(ctx context.Context, paths []string) ([]workout.Stress, error) {
	results := make([]workout.Stress, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			log, err := workout.ReadLog(path, a.opts.DateOffset)
			if err != nil {
				return err
			}
			stress, err := workout.ComputeStress(log, a.schedule)
			if err != nil {
				return err
			}

			logger.Debug("scored workout",
				"path", path,
				"type", stress.Type,
				"duration_s", stress.DurationSeconds,
				"ftp", stress.Threshold,
				"np", fmt.Sprintf("%.1f", stress.NormalizedPower),
				"tss", stress.Score,
				"legacy_tss", stress.LegacyScore,
			)
			results[i] = stress
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("scoring aborted", "err", err)
		return nil, err
	}
	return results, nil
}
