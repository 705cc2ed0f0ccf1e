package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"ERROR", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelDebug.String() != "DEBUG" || LevelError.String() != "ERROR" {
		t.Error("level names wrong")
	}
	if Level(99).String() != "UNKNOWN" {
		t.Error("out-of-range level should stringify as UNKNOWN")
	}
}

func TestLoggerWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "vidsweep.log")

	log, err := New(Config{Level: "debug", File: logPath, MaxSizeMB: 10, MaxBackups: 3})
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	log.Info("scan", "pass complete", F("files", 12))
	log.Debug("probe", "extracted metadata", F("path", "/library/a.mkv"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	out := string(content)

	if !strings.Contains(out, "[INFO] [scan] pass complete | files=12") {
		t.Errorf("missing info line in %q", out)
	}
	if !strings.Contains(out, "[DEBUG] [probe]") {
		t.Errorf("missing debug line in %q", out)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "vidsweep.log")

	log, err := New(Config{Level: "warn", File: logPath})
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	log.Info("scan", "suppressed")
	log.Warn("scan", "kept")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(content), "suppressed") {
		t.Error("info line should have been filtered at warn level")
	}
	if !strings.Contains(string(content), "kept") {
		t.Error("warn line missing")
	}
}

func TestLoggerSetLevel(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "vidsweep.log")

	log, err := New(Config{Level: "info", File: logPath})
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	log.Debug("scan", "before")
	log.SetLevel(LevelDebug)
	log.Debug("scan", "after")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(content), "before") {
		t.Error("debug line leaked before SetLevel")
	}
	if !strings.Contains(string(content), "after") {
		t.Error("debug line missing after SetLevel")
	}
}

func TestNopLoggerIsSilent(t *testing.T) {
	log := Nop()
	log.Info("scan", "nothing")
	log.Error("scan", "still nothing", os.ErrNotExist)
	if err := log.Close(); err != nil {
		t.Errorf("Close = %v", err)
	}
}

func TestRotateFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "vidsweep.log")

	write := func(path, content string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	write(base, "current")
	write(filepath.Join(dir, "vidsweep.1.log"), "one")
	write(filepath.Join(dir, "vidsweep.2.log"), "two")
	write(filepath.Join(dir, "vidsweep.3.log"), "three")

	if err := rotateFiles(base, 3); err != nil {
		t.Fatal(err)
	}

	// Current became .1, the chain shifted up and the oldest fell off.
	read := func(path string) string {
		t.Helper()
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		return string(content)
	}

	if got := read(filepath.Join(dir, "vidsweep.1.log")); got != "current" {
		t.Errorf("backup 1 = %q, want current", got)
	}
	if got := read(filepath.Join(dir, "vidsweep.2.log")); got != "one" {
		t.Errorf("backup 2 = %q, want one", got)
	}
	if got := read(filepath.Join(dir, "vidsweep.3.log")); got != "two" {
		t.Errorf("backup 3 = %q, want two", got)
	}
	if _, err := os.Stat(base); !os.IsNotExist(err) {
		t.Error("current log should have been renamed away")
	}
}
