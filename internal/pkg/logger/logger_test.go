package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.log")

	log, err := New(Options{Level: "info", Format: "json", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Info("streaks reconciled", "updated", 3)
	log.Debug("suppressed below info")
	log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, `"msg":"streaks reconciled"`) || !strings.Contains(out, `"updated":3`) {
		t.Fatalf("unexpected log output %q", out)
	}
	if strings.Contains(out, "suppressed") {
		t.Fatalf("debug line must be filtered at info level")
	}
}

func TestNopIsSafe(t *testing.T) {
	l := Nop().With("component", "test")
	l.Info("nothing happens")
	l.Sync()
}
