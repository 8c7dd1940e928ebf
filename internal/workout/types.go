package workout

import (
	"errors"
	"fmt"
	"time"
)

// ErrFormat is returned when a log field cannot be parsed
var ErrFormat = errors.New("malformed workout log")

// ErrIntegrity is returned when a log is internally inconsistent
var ErrIntegrity = errors.New("workout log integrity violation")

// LogError ties a failure to the log file that caused it
type LogError struct {
	Path string
	Err  error
}

func (e *LogError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LogError) Unwrap() error {
	return e.Err
}

// Type is the kind of workout recorded by the monitor
type Type int

const (
	FixedTimeSplits Type = iota
	FixedDistanceSplits
	VariableInterval
)

var typeNames = map[Type]string{
	FixedTimeSplits:     "FixedTimeSplits",
	FixedDistanceSplits: "FixedDistanceSplits",
	VariableInterval:    "VariableInterval",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a log's workoutType tag to a Type
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown workout type %q", ErrIntegrity, s)
}

// RestInterval is the intervalType tag of recovery intervals
const RestInterval = "Rest"

// Sample is one row of a workout log
type Sample struct {
	AvgPower      float64 // cumulative average power so far
	StrokePower   float64 // power of this stroke
	WorkTime      int     // elapsed work time, seconds
	WorkoutType   string
	IntervalIndex int
	IntervalType  string
}

// Log is one parsed workout file
type Log struct {
	Path    string
	Date    time.Time
	Samples []Sample
}

// Stress is the computed load of one workout
type Stress struct {
	Path            string
	Date            time.Time
	Type            Type
	DurationSeconds int
	Threshold       int
	MeanPower       float64
	NormalizedPower float64
	IntensityFactor float64
	Score           int
	LegacyScore     int // mean-power approximation, diagnostic only
}
