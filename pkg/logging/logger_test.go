package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []Entry {
	t.Helper()
	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{" info ", InfoLevel},
		{"Warn", WarnLevel},
		{"WARNING", WarnLevel},
		{"error", ErrorLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDomainFields(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"Node", Node(3), "node", 3},
		{"Slot", Slot(1), "slot", 1},
		{"LinkIndex", LinkIndex(7), "link", 7},
		{"Mode", Mode("EditingLink"), "mode", "EditingLink"},
		{"Op", Op("add_link"), "op", "add_link"},
		{"TxID", TxID("abc"), "tx", "abc"},
		{"Reason", Reason("cycle"), "reason", "cycle"},
		{"Count", Count(2), "count", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key || tt.field.Value != tt.value {
				t.Errorf("%s() = %+v, want {Key:%s Value:%v}", tt.name, tt.field, tt.key, tt.value)
			}
		})
	}

	if f := Error(nil); f.Value != nil {
		t.Errorf("Error(nil).Value = %v, want nil", f.Value)
	}
	if f := Error(errors.New("boom")); f.Value != "boom" {
		t.Errorf("Error().Value = %v, want boom", f.Value)
	}
}

func TestJSONLogger_Entry(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)
	logger.sink.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	logger.Info("link added", Node(1), Slot(0))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != "INFO" || e.Message != "link added" {
		t.Errorf("entry = %+v", e)
	}
	if e.Time != "2026-01-02T03:04:05Z" {
		t.Errorf("time = %s", e.Time)
	}
	// JSON numbers decode as float64
	if e.Fields["node"] != float64(1) || e.Fields["slot"] != float64(0) {
		t.Errorf("fields = %v", e.Fields)
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("levels = %s, %s", entries[0].Level, entries[1].Level)
	}
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, InfoLevel).Info("plain")
	if strings.Contains(buf.String(), "fields") {
		t.Errorf("expected no fields key, got %s", buf.String())
	}
}

func TestJSONLogger_WithSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := NewJSONLogger(&buf, InfoLevel)
	child := parent.With(Component("editor"))

	parent.SetLevel(ErrorLevel)
	child.Info("suppressed")
	if buf.Len() != 0 {
		t.Fatalf("child ignored parent level change: %s", buf.String())
	}

	child.Error("kept", Mode("Idle"))
	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Fields["component"] != "editor" || entries[0].Fields["mode"] != "Idle" {
		t.Errorf("fields = %v", entries[0].Fields)
	}
	if got := child.GetLevel(); got != ErrorLevel {
		t.Errorf("child.GetLevel() = %v, want ERROR", got)
	}
}

func TestJSONLogger_CallFieldsOverridePreset(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel).With(Node(1))
	logger.Info("override", Node(2))

	entries := decodeLines(t, &buf)
	if entries[0].Fields["node"] != float64(2) {
		t.Errorf("node = %v, want 2", entries[0].Fields["node"])
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.log")
	logger, closer, err := NewFileLogger(path, InfoLevel)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	logger.Info("hello")
	logger.Debug("dropped")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "\n"); got != 1 {
		t.Errorf("file has %d lines, want 1", got)
	}
}

func TestNewFileLogger_BadPath(t *testing.T) {
	_, _, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "x.log"), InfoLevel)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, InfoLevel))
	t.Cleanup(func() { SetDefaultLogger(NewNopLogger()) })

	DefaultLogger().Info("via default")
	if !strings.Contains(buf.String(), "via default") {
		t.Errorf("default logger did not write: %q", buf.String())
	}
}

func TestOrNop(t *testing.T) {
	if _, ok := OrNop(nil).(NopLogger); !ok {
		t.Error("OrNop(nil) should return NopLogger")
	}
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, InfoLevel)
	if OrNop(l) != Logger(l) {
		t.Error("OrNop should return a non-nil logger unchanged")
	}
}

func TestTimer(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	StartTimer(logger, "load scene", Path("a.yaml")).Stop()
	StartTimer(logger, "save scene").StopErr(errors.New("disk full"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Level != "DEBUG" || entries[0].Fields["latency"] == nil {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].Level != "ERROR" || entries[1].Fields["error"] != "disk full" {
		t.Errorf("second entry = %+v", entries[1])
	}
}
