package analysis

import "time"

// DateKey is the layout used to key days
const DateKey = "2006-01-02"

// ThresholdLookup resolves the threshold power in effect on a date
type ThresholdLookup interface {
	Lookup(date time.Time) (int, error)
}

// Day truncates t to midnight UTC
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewCalendar returns one zero-load entry per day from start through end,
// both inclusive. It returns nil if end is before start.
func NewCalendar(start, end time.Time) []DailyEntry {
	startDay, endDay := Day(start), Day(end)
	if endDay.Before(startDay) {
		return nil
	}

	var days []DailyEntry
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		days = append(days, DailyEntry{Date: d})
	}
	return days
}

// FillThreshold sets each day's FTP from the schedule. Days before the first
// scheduled value are left at 0.
func FillThreshold(days []DailyEntry, schedule ThresholdLookup) {
	for i := range days {
		ftp, err := schedule.Lookup(days[i].Date)
		if err != nil {
			days[i].FTP = 0
			continue
		}
		days[i].FTP = ftp
	}
}

// IndexOf returns the position of date in a calendar built by NewCalendar
func IndexOf(days []DailyEntry, date time.Time) (int, bool) {
	if len(days) == 0 {
		return 0, false
	}
	offset := Day(date).Sub(days[0].Date)
	i := int(offset.Hours() / 24)
	if offset < 0 || i >= len(days) {
		return 0, false
	}
	return i, true
}
