package workout

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover lists workout logs under dir. Logs live one directory per year;
// directories and files are returned in sorted order.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing log directory: %w", err)
	}

	var years []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			years = append(years, e.Name())
		}
	}
	sort.Strings(years)

	var logs []string
	for _, year := range years {
		files, err := os.ReadDir(filepath.Join(dir, year))
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", year, err)
		}

		var names []string
		for _, f := range files {
			if f.Type().IsRegular() && strings.HasSuffix(f.Name(), ".csv") {
				names = append(names, f.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			logs = append(logs, filepath.Join(dir, year, name))
		}
	}

	return logs, nil
}
