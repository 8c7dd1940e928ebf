package analysis

import (
	"errors"
	"fmt"
	"time"
)

// Default EMA time constants, in days
const (
	DefaultATLDecay = 7
	DefaultCTLDecay = 42
)

// DailyEntry is one calendar day of the training-load table
type DailyEntry struct {
	Date time.Time
	TSS  float64 // Sum of the day's workout stress scores
	FTP  int     // Threshold power in effect, 0 before the first scheduled value
	ATL  float64 // Acute Training Load - "Fatigue"
	CTL  float64 // Chronic Training Load - "Fitness"
	TSB  float64 // Training Stress Balance (CTL - ATL) - "Form"
}

// LoadModel holds the constants of the fatigue/fitness recurrence
type LoadModel struct {
	ATLDecay    int
	CTLDecay    int
	StartingATL float64
	StartingCTL float64
}

// DefaultLoadModel returns the usual 7/42 day model starting from zero load
func DefaultLoadModel() LoadModel {
	return LoadModel{
		ATLDecay: DefaultATLDecay,
		CTLDecay: DefaultCTLDecay,
	}
}

// Validate checks the decay constants are usable
func (m LoadModel) Validate() error {
	if m.ATLDecay <= 0 {
		return fmt.Errorf("atl decay must be positive, got %d", m.ATLDecay)
	}
	if m.CTLDecay <= 0 {
		return fmt.Errorf("ctl decay must be positive, got %d", m.CTLDecay)
	}
	if m.StartingATL < 0 || m.StartingCTL < 0 {
		return errors.New("starting loads must not be negative")
	}
	return nil
}

// Step advances ATL and CTL by one day of load
func (m LoadModel) Step(atl, ctl, tss float64) (float64, float64) {
	atl = atl + (tss-atl)/float64(m.ATLDecay)
	ctl = ctl + (tss-ctl)/float64(m.CTLDecay)
	return atl, ctl
}

// Apply fills ATL/CTL/TSB in place. days must be contiguous and ascending;
// each day depends on the one before it so this is a single forward pass.
func (m LoadModel) Apply(days []DailyEntry) {
	atl, ctl := m.StartingATL, m.StartingCTL
	for i := range days {
		atl, ctl = m.Step(atl, ctl, days[i].TSS)
		days[i].ATL = atl
		days[i].CTL = ctl
		days[i].TSB = ctl - atl
	}
}

// Latest returns the last day of the table
func Latest(days []DailyEntry) (DailyEntry, bool) {
	if len(days) == 0 {
		return DailyEntry{}, false
	}
	return days[len(days)-1], true
}

// FormDescription labels a TSB value
func FormDescription(tsb float64) string {
	switch {
	case tsb > 25:
		return "Detraining - fitness is fading"
	case tsb > 5:
		return "Fresh - ready for a test piece"
	case tsb > -10:
		return "Balanced - steady training"
	case tsb > -30:
		return "Loaded - fitness is building"
	default:
		return "Overreaching - back off"
	}
}
