package report

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"erg-tsb/internal/analysis"
)

// Summary renders a card with the latest training load
func Summary(days []analysis.DailyEntry) string {
	title := titleStyle.Render("Training Load")

	latest, ok := analysis.Latest(days)
	if !ok {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No days in range"))
	}

	ftp := "undefined"
	if latest.FTP > 0 {
		ftp = fmt.Sprintf("%d W", latest.FTP)
	}

	lines := []string{
		mutedStyle.Render("as of " + latest.Date.Format(analysis.DateKey)),
		"",
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%.1f", latest.CTL)),
		RenderMetric("Fatigue (ATL)", fmt.Sprintf("%.1f", latest.ATL)),
		RenderMetric("Form (TSB)", formStyle(latest.TSB).Render(fmt.Sprintf("%+.1f", latest.TSB))),
		RenderMetric("Today's TSS", fmt.Sprintf("%.0f", latest.TSS)),
		RenderMetric("Threshold", ftp),
		RenderMetric("Training days", fmt.Sprintf("%d of %d", trainingDays(days), len(days))),
		"",
		mutedStyle.Render(analysis.FormDescription(latest.TSB)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func trainingDays(days []analysis.DailyEntry) int {
	n := 0
	for _, d := range days {
		if d.TSS > 0 {
			n++
		}
	}
	return n
}
