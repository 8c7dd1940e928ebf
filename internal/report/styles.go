package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent  = lipgloss.Color("#2563EB") // blade blue
	calm    = lipgloss.Color("#0EA5E9")
	caution = lipgloss.Color("#F97316")
	alarm   = lipgloss.Color("#DC2626")
	dim     = lipgloss.Color("#64748B")
	ink     = lipgloss.Color("#F8FAFC")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(dim).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().Foreground(dim).Width(18)
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(ink)
	mutedStyle = lipgloss.NewStyle().Foreground(dim)

	barLabelStyle = lipgloss.NewStyle().Foreground(dim).Width(12)
	barStyle      = lipgloss.NewStyle().Foreground(calm)
	barValueStyle = lipgloss.NewStyle().Foreground(ink).PaddingLeft(1)
)

// RenderMetric renders a label and its value on one line
func RenderMetric(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// RenderBar renders a bar filled to fraction of width, padded to width
func RenderBar(fraction float64, width int) string {
	filled := min(max(int(fraction*float64(width)), 0), width)
	return barStyle.Render(strings.Repeat("█", filled)) + strings.Repeat(" ", width-filled)
}

// formStyle colors a TSB value using the same bands as FormDescription
func formStyle(tsb float64) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch {
	case tsb > 5:
		return s.Foreground(calm)
	case tsb > -10:
		return s.Foreground(ink)
	case tsb > -30:
		return s.Foreground(caution)
	default:
		return s.Foreground(alarm)
	}
}
