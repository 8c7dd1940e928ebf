package workout

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"2020/boatcoach-2020-01-03.csv",
		"2019/boatcoach-2019-12-30.csv",
		"2019/boatcoach-2019-01-02.csv",
		"2019/notes.txt",
		".git/boatcoach-2019-01-01.csv",
	}
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// loose files at the top level are not logs
	if err := os.WriteFile(filepath.Join(dir, "FTP.txt"), []byte("2019-01-01 145\n"), 0644); err != nil {
		t.Fatal(err)
	}

	logs, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "2019", "boatcoach-2019-01-02.csv"),
		filepath.Join(dir, "2019", "boatcoach-2019-12-30.csv"),
		filepath.Join(dir, "2020", "boatcoach-2020-01-03.csv"),
	}
	if len(logs) != len(want) {
		t.Fatalf("Discover() = %v, want %v", logs, want)
	}
	for i := range want {
		if logs[i] != want[i] {
			t.Errorf("logs[%d] = %s, want %s", i, logs[i], want[i])
		}
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}
