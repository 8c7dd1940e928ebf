package workout

import (
	"errors"
	"math"
	"testing"
	"time"
)

type fixedThreshold int

func (f fixedThreshold) Lookup(time.Time) (int, error) {
	return int(f), nil
}

type noThreshold struct{}

func (noThreshold) Lookup(time.Time) (int, error) {
	return 0, errors.New("no threshold power defined")
}

func steadySamples(n int, kind string, power float64) []Sample {
	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{
			AvgPower:    power,
			StrokePower: power,
			WorkTime:    (i + 1) * 2,
			WorkoutType: kind,
		}
	}
	return samples
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input     string
		expected  Type
		expectErr bool
	}{
		{"FixedTimeSplits", FixedTimeSplits, false},
		{"FixedDistanceSplits", FixedDistanceSplits, false},
		{"VariableInterval", VariableInterval, false},
		{"JustRow", 0, true},
		{"", 0, true},
		{"fixedtimesplits", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.expectErr {
				if !errors.Is(err, ErrIntegrity) {
					t.Errorf("ParseType(%q) error = %v, want ErrIntegrity", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseType(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	mixed := steadySamples(4, "FixedTimeSplits", 150)
	mixed[2].WorkoutType = "FixedDistanceSplits"

	tests := []struct {
		name      string
		samples   []Sample
		expected  Type
		expectErr bool
	}{
		{"single type", steadySamples(4, "FixedDistanceSplits", 150), FixedDistanceSplits, false},
		{"mixed types", mixed, 0, true},
		{"unknown type", steadySamples(4, "JustRow", 150), 0, true},
		{"no samples", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.samples)
			if tt.expectErr {
				if !errors.Is(err, ErrIntegrity) {
					t.Errorf("Classify() error = %v, want ErrIntegrity", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Classify() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	intervals := []Sample{
		{WorkTime: 60, IntervalIndex: 1, IntervalType: "Work"},
		{WorkTime: 240, IntervalIndex: 1, IntervalType: "Work"},
		{WorkTime: 30, IntervalIndex: 2, IntervalType: RestInterval},
		{WorkTime: 120, IntervalIndex: 2, IntervalType: RestInterval},
		{WorkTime: 100, IntervalIndex: 3, IntervalType: "Work"},
		{WorkTime: 180, IntervalIndex: 3, IntervalType: "Work"},
		{WorkTime: 150, IntervalIndex: 3, IntervalType: "Work"},
	}

	allRest := []Sample{
		{WorkTime: 30, IntervalIndex: 1, IntervalType: RestInterval},
		{WorkTime: 60, IntervalIndex: 2, IntervalType: RestInterval},
	}

	tests := []struct {
		name      string
		kind      Type
		samples   []Sample
		expected  int
		expectErr bool
	}{
		{"fixed time takes longest work time", FixedTimeSplits, steadySamples(10, "FixedTimeSplits", 100), 20, false},
		{"fixed distance takes longest work time", FixedDistanceSplits, []Sample{{WorkTime: 50}, {WorkTime: 300}, {WorkTime: 200}}, 300, false},
		// interval 2 is rest: 240 + 180
		{"intervals skip rest", VariableInterval, intervals, 420, false},
		{"intervals all rest", VariableInterval, allRest, 0, true},
		{"unknown type", Type(99), intervals, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Duration(tt.kind, tt.samples)
			if tt.expectErr {
				if !errors.Is(err, ErrIntegrity) {
					t.Errorf("Duration() error = %v, want ErrIntegrity", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Duration() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestComputeStress(t *testing.T) {
	date := time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)

	// one hour at a steady 200 W against a 145 W threshold
	samples := steadySamples(1800, "FixedTimeSplits", 200)

	stress, err := ComputeStress(&Log{Path: "2019/a.csv", Date: date, Samples: samples}, fixedThreshold(145))
	if err != nil {
		t.Fatalf("ComputeStress() error: %v", err)
	}

	if stress.Type != FixedTimeSplits {
		t.Errorf("Type = %v, want FixedTimeSplits", stress.Type)
	}
	if stress.DurationSeconds != 3600 {
		t.Errorf("DurationSeconds = %d, want 3600", stress.DurationSeconds)
	}
	if stress.Threshold != 145 {
		t.Errorf("Threshold = %d, want 145", stress.Threshold)
	}
	if math.Abs(stress.NormalizedPower-200) > 1e-9 {
		t.Errorf("NormalizedPower = %v, want 200", stress.NormalizedPower)
	}
	if math.Abs(stress.IntensityFactor-200.0/145) > 1e-9 {
		t.Errorf("IntensityFactor = %v, want %v", stress.IntensityFactor, 200.0/145)
	}
	// floor(3600*200*1.379/(145*3600)*100) = floor(190.2)
	if stress.Score != 190 {
		t.Errorf("Score = %d, want 190", stress.Score)
	}
	// floor(3600*200/(145*3600)*100) = floor(137.9)
	if stress.LegacyScore != 137 {
		t.Errorf("LegacyScore = %d, want 137", stress.LegacyScore)
	}
	if !stress.Date.Equal(date) || stress.Path != "2019/a.csv" {
		t.Errorf("identity = %s %v", stress.Path, stress.Date)
	}
}

func TestComputeStressMeanPowerFromLastSample(t *testing.T) {
	samples := steadySamples(40, "FixedTimeSplits", 150)
	samples[len(samples)-1].AvgPower = 172

	stress, err := ComputeStress(&Log{Path: "x.csv", Samples: samples}, fixedThreshold(150))
	if err != nil {
		t.Fatalf("ComputeStress() error: %v", err)
	}
	if stress.MeanPower != 172 {
		t.Errorf("MeanPower = %v, want 172", stress.MeanPower)
	}
}

func TestComputeStressErrors(t *testing.T) {
	mixed := steadySamples(40, "FixedTimeSplits", 150)
	mixed[10].WorkoutType = "VariableInterval"

	tests := []struct {
		name       string
		samples    []Sample
		thresholds ThresholdLookup
		sentinel   error
	}{
		{"mixed types", mixed, fixedThreshold(150), ErrIntegrity},
		{"unknown type", steadySamples(40, "JustRow", 150), fixedThreshold(150), ErrIntegrity},
		{"interval with only rest", []Sample{{WorkoutType: "VariableInterval", IntervalType: RestInterval, WorkTime: 60}}, fixedThreshold(150), ErrIntegrity},
		{"no threshold", steadySamples(40, "FixedTimeSplits", 150), noThreshold{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeStress(&Log{Path: "2019/bad.csv", Samples: tt.samples}, tt.thresholds)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var logErr *LogError
			if !errors.As(err, &logErr) || logErr.Path != "2019/bad.csv" {
				t.Errorf("error %v should name the log", err)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v should wrap %v", err, tt.sentinel)
			}
		})
	}
}
