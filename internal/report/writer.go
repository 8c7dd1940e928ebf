package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"erg-tsb/internal/logger"
	"erg-tsb/internal/service"
	"erg-tsb/internal/store"
)

// Output file names
const (
	LoadFile    = "tsb.txt"
	ParquetFile = "tsb.parquet"
)

var periodAdjectives = map[store.Period]string{
	store.Week:  "weekly",
	store.Month: "monthly",
	store.Year:  "yearly",
}

// PeriodReport holds one resampling to chart
type PeriodReport struct {
	Period store.Period
	Totals []store.PeriodTotal
}

// PeriodFile returns the file a period chart is written to, e.g. tsb_weekly.txt
func PeriodFile(p store.Period) string {
	return "tsb_" + periodAdjective(p) + ".txt"
}

func periodAdjective(p store.Period) string {
	if adj, ok := periodAdjectives[p]; ok {
		return adj
	}
	return p.String()
}

// periodTitle is "Weekly TSS" and so on
func periodTitle(p store.Period) string {
	adj := periodAdjective(p)
	return strings.ToUpper(adj[:1]) + adj[1:] + " TSS"
}

// Writer renders reports into a directory
type Writer struct {
	Dir     string
	PlotEnd time.Time // last day on the load charts
}

// Write renders every report and then writes them all. Nothing is written
// if rendering fails.
func (w Writer) Write(result *service.Result, periods []PeriodReport) error {
	if result == nil {
		return errors.New("no result to report")
	}

	var load strings.Builder
	load.WriteString(LoadChart(result.Days, w.PlotEnd))
	load.WriteString("\n")
	load.WriteString(StressChart(result.Days, w.PlotEnd))
	load.WriteString("\n")
	load.WriteString(Summary(result.Days))
	load.WriteString("\n")

	table, err := MarshalDaily(result.Days)
	if err != nil {
		return fmt.Errorf("encoding parquet: %w", err)
	}

	type file struct {
		name string
		data []byte
	}
	files := []file{
		{LoadFile, []byte(load.String())},
		{ParquetFile, table},
	}
	for _, p := range periods {
		files = append(files, file{PeriodFile(p.Period), []byte(PeriodChart(periodTitle(p.Period), p.Totals))})
	}

	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, f := range files {
		path := filepath.Join(w.Dir, f.name)
		if err := os.WriteFile(path, f.data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
		logger.Debug("wrote report", "path", path, "bytes", len(f.data))
	}
	return nil
}
