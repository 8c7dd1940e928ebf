package store

import (
	"fmt"
	"strings"
	"time"
)

// Period is a resampling bucket
type Period int

const (
	Week  Period = iota // Monday to Sunday, labelled by its Monday
	Month               // labelled YYYY-MM
	Year                // labelled YYYY
)

func (p Period) String() string {
	switch p {
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	default:
		return fmt.Sprintf("Period(%d)", int(p))
	}
}

// ParsePeriod maps "week", "month" or "year" to a Period
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "weekly":
		return Week, nil
	case "month", "monthly":
		return Month, nil
	case "year", "yearly":
		return Year, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
	}
}

// PeriodTotal is the training load summed over one period
type PeriodTotal struct {
	Label        string    // sorts chronologically
	Start        time.Time // first day of the period present in the table
	TSS          float64
	TrainingDays int // days with non-zero TSS
	Workouts     int
}
