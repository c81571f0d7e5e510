package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHelpersBeforeInit(t *testing.T) {
	// Must not panic without a logger.
	Info("info")
	Debug("debug")
	Warn("warn")
	Error("error")
}

func TestInitWritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "debug"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	Info("feed loaded", "items", 3)
	Close()

	matches, err := filepath.Glob(filepath.Join(dir, "logs", "tuirss-*.log"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one log file, got %v (%v)", matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "feed loaded") || !strings.Contains(string(data), "items=3") {
		t.Errorf("log file missing entry:\n%s", data)
	}
}
