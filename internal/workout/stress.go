package workout

import (
	"fmt"
	"time"

	"erg-tsb/internal/analysis"
)

// ThresholdLookup resolves the threshold power in effect on a date
type ThresholdLookup interface {
	Lookup(date time.Time) (int, error)
}

// Classify returns the single workout type shared by every sample
func Classify(samples []Sample) (Type, error) {
	if len(samples) == 0 {
		return 0, fmt.Errorf("%w: log has no samples", ErrIntegrity)
	}

	tag := samples[0].WorkoutType
	for i, s := range samples[1:] {
		if s.WorkoutType != tag {
			return 0, fmt.Errorf("%w: mixed workout types %q and %q (sample %d)", ErrIntegrity, tag, s.WorkoutType, i+2)
		}
	}
	return ParseType(tag)
}

// Duration returns the work time of a workout in seconds. Interval workouts
// count only non-rest intervals, each by its longest work time.
func Duration(t Type, samples []Sample) (int, error) {
	switch t {
	case VariableInterval:
		return intervalDuration(samples)
	case FixedTimeSplits, FixedDistanceSplits:
		return maxWorkTime(samples), nil
	default:
		return 0, fmt.Errorf("%w: no duration rule for %v", ErrIntegrity, t)
	}
}

func maxWorkTime(samples []Sample) int {
	longest := 0
	for _, s := range samples {
		if s.WorkTime > longest {
			longest = s.WorkTime
		}
	}
	return longest
}

func intervalDuration(samples []Sample) (int, error) {
	perInterval := make(map[int]int)
	for _, s := range samples {
		if s.IntervalType == RestInterval {
			continue
		}
		if longest, ok := perInterval[s.IntervalIndex]; !ok || s.WorkTime > longest {
			perInterval[s.IntervalIndex] = s.WorkTime
		}
	}
	if len(perInterval) == 0 {
		return 0, fmt.Errorf("%w: interval workout has no work intervals", ErrIntegrity)
	}

	total := 0
	for _, longest := range perInterval {
		total += longest
	}
	return total, nil
}

// ComputeStress classifies a log and derives its training stress
func ComputeStress(log *Log, thresholds ThresholdLookup) (Stress, error) {
	wrap := func(err error) (Stress, error) {
		return Stress{}, &LogError{Path: log.Path, Err: err}
	}

	kind, err := Classify(log.Samples)
	if err != nil {
		return wrap(err)
	}

	duration, err := Duration(kind, log.Samples)
	if err != nil {
		return wrap(err)
	}

	ftp, err := thresholds.Lookup(log.Date)
	if err != nil {
		return wrap(err)
	}

	strokePower := make([]float64, len(log.Samples))
	for i, s := range log.Samples {
		strokePower[i] = s.StrokePower
	}

	meanPower := log.Samples[len(log.Samples)-1].AvgPower
	np := analysis.NormalizedPower(strokePower)
	intensity := analysis.IntensityFactor(np, ftp)

	return Stress{
		Path:            log.Path,
		Date:            log.Date,
		Type:            kind,
		DurationSeconds: duration,
		Threshold:       ftp,
		MeanPower:       meanPower,
		NormalizedPower: np,
		IntensityFactor: intensity,
		Score:           analysis.StressScore(duration, np, intensity, ftp),
		LegacyScore:     analysis.LegacyStressScore(duration, meanPower, ftp),
	}, nil
}
