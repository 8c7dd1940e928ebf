package analysis

import (
	"errors"
	"testing"
	"time"
)

type stubSchedule map[string]int

func (s stubSchedule) Lookup(date time.Time) (int, error) {
	// walk back day by day to the latest scheduled value
	for d := Day(date); d.Year() > 2000; d = d.AddDate(0, 0, -1) {
		if v, ok := s[d.Format(DateKey)]; ok {
			return v, nil
		}
	}
	return 0, errors.New("undefined")
}

func TestNewCalendar(t *testing.T) {
	start := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		end     time.Time
		wantLen int
	}{
		{"same day", start, 1},
		{"across leap day", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), 5},
		{"end before start", start.AddDate(0, 0, -1), 0},
		{"end with time of day", time.Date(2024, 2, 28, 23, 59, 0, 0, time.UTC), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := NewCalendar(start, tt.end)
			if len(days) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(days), tt.wantLen)
			}
			for i, d := range days {
				if !d.Date.Equal(start.AddDate(0, 0, i)) {
					t.Errorf("day %d = %v, want %v", i, d.Date, start.AddDate(0, 0, i))
				}
				if d.TSS != 0 {
					t.Errorf("day %d TSS = %v, want 0", i, d.TSS)
				}
			}
		})
	}
}

func TestFillThreshold(t *testing.T) {
	days := NewCalendar(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2019, 1, 10, 0, 0, 0, 0, time.UTC))
	FillThreshold(days, stubSchedule{
		"2019-01-03": 145,
		"2019-01-07": 150,
	})

	want := []int{0, 0, 145, 145, 145, 145, 150, 150, 150, 150}
	for i, d := range days {
		if d.FTP != want[i] {
			t.Errorf("%s FTP = %d, want %d", d.Date.Format(DateKey), d.FTP, want[i])
		}
	}
}

func TestIndexOf(t *testing.T) {
	days := NewCalendar(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2019, 1, 31, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		date   time.Time
		want   int
		wantOK bool
	}{
		{time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), 0, true},
		{time.Date(2019, 1, 15, 12, 0, 0, 0, time.UTC), 14, true},
		{time.Date(2019, 1, 31, 0, 0, 0, 0, time.UTC), 30, true},
		{time.Date(2018, 12, 31, 0, 0, 0, 0, time.UTC), 0, false},
		{time.Date(2019, 2, 1, 0, 0, 0, 0, time.UTC), 0, false},
	}

	for _, tt := range tests {
		got, ok := IndexOf(days, tt.date)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("IndexOf(%v) = %d, %v; want %d, %v", tt.date, got, ok, tt.want, tt.wantOK)
		}
	}

	if _, ok := IndexOf(nil, time.Now()); ok {
		t.Error("IndexOf on empty calendar should report false")
	}
}
