package report

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"erg-tsb/internal/analysis"
	"erg-tsb/internal/store"
)

// Chart bounds; data outside them widens the axis
const (
	LoadLowerBound = -50
	LoadUpperBound = 100
)

const (
	chartHeight = 16
	chartWidth  = 100
	barWidth    = 40
)

// clip returns the days up to and including plotEnd
func clip(days []analysis.DailyEntry, plotEnd time.Time) []analysis.DailyEntry {
	end := analysis.Day(plotEnd)
	n := 0
	for n < len(days) && !days[n].Date.After(end) {
		n++
	}
	return days[:n]
}

func span(days []analysis.DailyEntry) string {
	return fmt.Sprintf("%s to %s",
		days[0].Date.Format(analysis.DateKey), days[len(days)-1].Date.Format(analysis.DateKey))
}

// LoadChart plots CTL, ATL and TSB through plotEnd
func LoadChart(days []analysis.DailyEntry, plotEnd time.Time) string {
	days = clip(days, plotEnd)
	if len(days) == 0 {
		return "No days to plot\n"
	}

	ctl := make([]float64, len(days))
	atl := make([]float64, len(days))
	tsb := make([]float64, len(days))
	for i, d := range days {
		ctl[i], atl[i], tsb[i] = d.CTL, d.ATL, d.TSB
	}

	graph := asciigraph.PlotMany([][]float64{ctl, atl, tsb},
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Precision(0),
		asciigraph.LowerBound(LoadLowerBound),
		asciigraph.UpperBound(LoadUpperBound),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Green, asciigraph.Red),
		asciigraph.SeriesLegends("CTL (fitness)", "ATL (fatigue)", "TSB (form)"),
		asciigraph.Caption("Training load, "+span(days)),
	)
	return titleStyle.Render("Fitness, fatigue and form") + "\n" + graph + "\n"
}

// StressChart plots daily TSS through plotEnd
func StressChart(days []analysis.DailyEntry, plotEnd time.Time) string {
	days = clip(days, plotEnd)
	if len(days) == 0 {
		return "No days to plot\n"
	}

	tss := make([]float64, len(days))
	for i, d := range days {
		tss[i] = d.TSS
	}

	graph := asciigraph.Plot(tss,
		asciigraph.Height(chartHeight/2),
		asciigraph.Width(chartWidth),
		asciigraph.Precision(0),
		asciigraph.LowerBound(0),
		asciigraph.Caption("Daily TSS, "+span(days)),
	)
	return titleStyle.Render("Training stress") + "\n" + graph + "\n"
}

// PeriodChart renders one bar per period scaled to the largest total
func PeriodChart(title string, totals []store.PeriodTotal) string {
	header := titleStyle.Render(title)
	if len(totals) == 0 {
		return header + "\nNo periods to show\n"
	}

	peak := 0.0
	for _, p := range totals {
		if p.TSS > peak {
			peak = p.TSS
		}
	}

	rows := []string{header}
	for _, p := range totals {
		fraction := 0.0
		if peak > 0 {
			fraction = p.TSS / peak
		}
		rows = append(rows, lipgloss.JoinHorizontal(
			lipgloss.Left,
			barLabelStyle.Render(p.Label),
			RenderBar(fraction, barWidth),
			barValueStyle.Render(fmt.Sprintf("%5.0f TSS", p.TSS)),
			mutedStyle.Render(fmt.Sprintf("  %d days, %d workouts", p.TrainingDays, p.Workouts)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}
