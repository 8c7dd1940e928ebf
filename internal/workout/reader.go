package workout

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Column names in the exported logs
const (
	ColAvgPower      = "totalAvgPower"
	ColStrokePower   = "strokePower"
	ColWorkTime      = "workTime"
	ColWorkoutType   = "workoutType"
	ColIntervalIndex = "intervalNumber"
	ColIntervalType  = "intervalType"
)

// DefaultDateOffset is where YYYY-MM-DD starts in "boatcoach-YYYY-MM-DD....csv"
const DefaultDateOffset = 10

const (
	dateLayout     = "2006-01-02"
	emptyFieldMark = ",,"
)

// ReadLog opens a log file, dates it from its filename and parses its samples
func ReadLog(path string, dateOffset int) (*Log, error) {
	date, err := DateFromFilename(filepath.Base(path), dateOffset)
	if err != nil {
		return nil, &LogError{Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LogError{Path: path, Err: fmt.Errorf("opening workout log: %w", err)}
	}
	defer f.Close()

	samples, err := ParseLog(f)
	if err != nil {
		return nil, &LogError{Path: path, Err: err}
	}

	return &Log{Path: path, Date: date, Samples: samples}, nil
}

// DateFromFilename reads a YYYY-MM-DD date at a fixed offset of the file name
func DateFromFilename(name string, offset int) (time.Time, error) {
	end := offset + len(dateLayout)
	if offset < 0 || len(name) < end {
		return time.Time{}, fmt.Errorf("%w: file name %q too short for a date at offset %d", ErrFormat, name, offset)
	}
	date, err := time.Parse(dateLayout, name[offset:end])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: no date at offset %d of %q", ErrFormat, offset, name)
	}
	return date, nil
}

// CleanLine drops everything from the first empty field pair onwards. The
// monitor export pads rows with a run of empty trailing columns.
func CleanLine(line string) string {
	line = strings.TrimRight(line, "\r\n")
	if i := strings.Index(line, emptyFieldMark); i >= 0 {
		return line[:i]
	}
	return line
}

// ParseLog reads a log export. The first line is a device preamble; the
// second is the header. Every line after the preamble is cleaned the same way.
func ParseLog(r io.Reader) ([]Sample, error) {
	var cleaned strings.Builder

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue
		}
		cleaned.WriteString(CleanLine(scanner.Text()))
		cleaned.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading workout log: %w", err)
	}

	cr := csv.NewReader(strings.NewReader(cleaned.String()))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header row", ErrFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	cols, err := newColumnIndex(header)
	if err != nil {
		return nil, err
	}

	var samples []Sample
	row := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrFormat, row, err)
		}

		s, err := cols.sample(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		samples = append(samples, s)
	}

	return samples, nil
}

// ParseDuration folds colon-separated parts from the largest unit down,
// so "H:M:S" is ((H*60)+M)*60+S. A fractional last part is truncated.
// Every part must be unsigned digits.
func ParseDuration(d string) (int, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return 0, fmt.Errorf("%w: empty duration", ErrFormat)
	}

	parts := strings.Split(d, ":")
	seconds := 0
	for i, p := range parts {
		if i == len(parts)-1 {
			if whole, frac, ok := strings.Cut(p, "."); ok {
				if !isDigits(frac) {
					return 0, fmt.Errorf("%w: invalid duration %q", ErrFormat, d)
				}
				p = whole
			}
		}
		if !isDigits(p) {
			return 0, fmt.Errorf("%w: invalid duration %q", ErrFormat, d)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid duration %q", ErrFormat, d)
		}
		seconds = seconds*60 + n
	}
	return seconds, nil
}

// isDigits reports whether s is a non-empty run of ASCII digits
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type columnIndex struct {
	avgPower, strokePower, workTime, workoutType int
	intervalIndex, intervalType                  int // -1 when absent
}

func newColumnIndex(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}

	required := func(name string) (int, error) {
		i, ok := pos[name]
		if !ok {
			return 0, fmt.Errorf("%w: missing column %q", ErrFormat, name)
		}
		return i, nil
	}
	optional := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}

	var c columnIndex
	var err error
	if c.avgPower, err = required(ColAvgPower); err != nil {
		return c, err
	}
	if c.strokePower, err = required(ColStrokePower); err != nil {
		return c, err
	}
	if c.workTime, err = required(ColWorkTime); err != nil {
		return c, err
	}
	if c.workoutType, err = required(ColWorkoutType); err != nil {
		return c, err
	}
	c.intervalIndex = optional(ColIntervalIndex)
	c.intervalType = optional(ColIntervalType)
	return c, nil
}

func (c columnIndex) sample(record []string) (Sample, error) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var s Sample
	var err error
	if s.AvgPower, err = parsePower(ColAvgPower, field(c.avgPower)); err != nil {
		return s, err
	}
	if s.StrokePower, err = parsePower(ColStrokePower, field(c.strokePower)); err != nil {
		return s, err
	}
	if s.WorkTime, err = ParseDuration(field(c.workTime)); err != nil {
		return s, err
	}
	s.WorkoutType = field(c.workoutType)
	s.IntervalType = field(c.intervalType)

	if raw := field(c.intervalIndex); raw != "" {
		idx, err := strconv.Atoi(raw)
		if err != nil {
			return s, fmt.Errorf("%w: %s %q is not an integer", ErrFormat, ColIntervalIndex, raw)
		}
		s.IntervalIndex = idx
	}
	return s, nil
}

// parsePower reads a power cell; blank cells are 0 W
func parsePower(col, raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrFormat, col, raw)
	}
	return v, nil
}
