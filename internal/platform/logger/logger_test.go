package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedaction(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)

	log.Info("login", "email", "sarah@example.com", "learner_id", "u1", "screen", "dashboard")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["email"] != "[REDACTED]" {
		t.Errorf("email = %v, want redacted", fields["email"])
	}
	if id, _ := fields["learner_id"].(string); !strings.HasPrefix(id, "hash:") || strings.Contains(id, "u1") {
		t.Errorf("learner_id = %v, want hashed", fields["learner_id"])
	}
	if fields["screen"] != "dashboard" {
		t.Errorf("screen = %v, want passthrough", fields["screen"])
	}
}

func TestWith_SanitizesToo(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core).With("api_key", "sk-123")

	log.Warn("call failed")

	if got := logs.All()[0].ContextMap()["api_key"]; got != "[REDACTED]" {
		t.Errorf("api_key = %v, want redacted", got)
	}
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	got := sanitizeKVs([]any{"a", 1, "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Errorf("sanitizeKVs = %v", got)
	}
}

func TestNew_WritesFileAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "academy.log")
	log, err := New(Options{Path: path, Level: "warn"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("hidden")
	log.Warn("shown")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("log file = %q", data)
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
