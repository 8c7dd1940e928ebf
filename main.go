package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"erg-tsb/internal/config"
	"erg-tsb/internal/logger"
	"erg-tsb/internal/report"
	"erg-tsb/internal/service"
	"erg-tsb/internal/store"
	"erg-tsb/internal/threshold"
)

func main() {
	if err := run(); err != nil {
		logger.Fatal("training load run failed", "err", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if _, err := logger.Init(logger.Config{Level: cfg.Logging.Level, File: cfg.Logging.File}); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	logger.Debug("starting run", "logs", cfg.Logs.Dir, "thresholds", cfg.Threshold.File)

	schedule, err := threshold.Load(cfg.Threshold.File)
	if err != nil {
		return fmt.Errorf("loading threshold schedule: %w", err)
	}

	start, end, err := cfg.Range(time.Now())
	if err != nil {
		return err
	}

	agg := service.NewAggregator(service.Options{
		LogDir:     cfg.Logs.Dir,
		StartDate:  start,
		EndDate:    end,
		DateOffset: cfg.Logs.DateOffset,
		Workers:    cfg.Workers,
	}, cfg.LoadModel(), schedule)

	result, err := agg.Run(ctx)
	if err != nil {
		return fmt.Errorf("aggregating workouts: %w", err)
	}

	// Resample through the in-memory store
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.SaveDays(result.Days); err != nil {
		return fmt.Errorf("saving daily table: %w", err)
	}
	if err := db.SaveWorkouts(result.Workouts); err != nil {
		return fmt.Errorf("saving workouts: %w", err)
	}

	periods, err := cfg.Periods()
	if err != nil {
		return err
	}
	var charts []report.PeriodReport
	for _, p := range periods {
		totals, err := db.Resample(p)
		if err != nil {
			return err
		}
		charts = append(charts, report.PeriodReport{Period: p, Totals: totals})
	}

	w := report.Writer{Dir: cfg.Output.Dir, PlotEnd: cfg.PlotEnd(end)}
	if err := w.Write(result, charts); err != nil {
		return fmt.Errorf("writing reports: %w", err)
	}
	logger.Info("reports written", "dir", cfg.Output.Dir, "days", len(result.Days), "workouts", len(result.Workouts))

	fmt.Println(report.Summary(result.Days))
	return nil
}
