package threshold

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the date format used in the schedule file
const DateLayout = "2006-01-02"

// ErrParse is returned when a schedule line is malformed
var ErrParse = errors.New("malformed threshold schedule")

// ErrUndefined is returned when no threshold is in effect for a date
var ErrUndefined = errors.New("no threshold power defined")

// Entry is a threshold power that takes effect on Date
type Entry struct {
	Date  time.Time
	Watts int
}

// Schedule is a sparse step function of threshold power over time.
// Entries are kept sorted by date.
type Schedule struct {
	entries []Entry
}

// New builds a schedule from entries in any order. When two entries share a
// date the later one in the slice wins.
func New(entries []Entry) *Schedule {
	byDate := make(map[string]Entry, len(entries))
	for _, e := range entries {
		e.Date = truncateDay(e.Date)
		byDate[e.Date.Format(DateLayout)] = e
	}

	sorted := make([]Entry, 0, len(byDate))
	for _, e := range byDate {
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	return &Schedule{entries: sorted}
}

// Load reads a schedule file from disk
func Load(path string) (*Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening threshold schedule: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse reads "DATE VALUE" lines. A '#' starts a comment that runs to the end
// of the line.
func Parse(r io.Reader) (*Schedule, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: expected DATE VALUE, got %q", ErrParse, lineNo, strings.TrimSpace(line))
		}

		date, err := time.Parse(DateLayout, fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid date %q", ErrParse, lineNo, fields[0])
		}

		watts, err := strconv.Atoi(fields[1])
		if err != nil || watts <= 0 {
			return nil, fmt.Errorf("%w: line %d: threshold power must be a positive integer, got %q", ErrParse, lineNo, fields[1])
		}

		entries = append(entries, Entry{Date: date, Watts: watts})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading threshold schedule: %w", err)
	}

	return New(entries), nil
}

// Lookup returns the threshold in effect on date: the latest entry dated on or
// before it. Dates before the first entry return ErrUndefined.
func (s *Schedule) Lookup(date time.Time) (int, error) {
	day := truncateDay(date)
	// first entry strictly after day
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Date.After(day)
	})
	if i == 0 {
		return 0, fmt.Errorf("%w on %s", ErrUndefined, day.Format(DateLayout))
	}
	return s.entries[i-1].Watts, nil
}

// First returns the earliest entry
func (s *Schedule) First() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[0], true
}

// Len returns the number of entries
func (s *Schedule) Len() int {
	return len(s.entries)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
