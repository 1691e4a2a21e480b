package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decodeEntry(t *testing.T, line []byte) LogEntry {
	t.Helper()
	var entry LogEntry
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("Failed to decode log line %q: %v", line, err)
	}
	return entry
}

func TestJSONLogger_BasicOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("graph built", Int("nodes", 12), String("layer", "north-star"))

	entry := decodeEntry(t, buf.Bytes())
	if entry.Level != "INFO" {
		t.Errorf("Expected level INFO, got %q", entry.Level)
	}
	if entry.Message != "graph built" {
		t.Errorf("Expected message 'graph built', got %q", entry.Message)
	}
	if entry.Fields["nodes"] != float64(12) {
		t.Errorf("Expected nodes field 12, got %v", entry.Fields["nodes"])
	}
	if entry.Fields["layer"] != "north-star" {
		t.Errorf("Expected layer field, got %v", entry.Fields["layer"])
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), buf.String())
	}
}

func TestJSONLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Debug("dropped")
	logger.SetLevel(DebugLevel)
	logger.Debug("kept")

	if got := logger.GetLevel(); got != DebugLevel {
		t.Errorf("Expected DebugLevel, got %v", got)
	}
	entry := decodeEntry(t, buf.Bytes())
	if entry.Message != "kept" {
		t.Errorf("Expected only the post-SetLevel line, got %q", entry.Message)
	}
}

func TestJSONLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("resolver"))
	child.Info("resolved", Count(3))

	entry := decodeEntry(t, buf.Bytes())
	if entry.Fields["component"] != "resolver" {
		t.Errorf("Expected inherited component field, got %v", entry.Fields)
	}
	if entry.Fields["count"] != float64(3) {
		t.Errorf("Expected count field, got %v", entry.Fields)
	}

	// The parent stays unchanged.
	buf.Reset()
	logger.Info("plain")
	entry = decodeEntry(t, buf.Bytes())
	if _, ok := entry.Fields["component"]; ok {
		t.Error("Parent logger must not inherit child fields")
	}
}

func TestJSONLogger_CallSiteFieldsOverrideInherited(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel).With(String("stage", "setup"))

	logger.Info("ok", String("stage", "run"))

	entry := decodeEntry(t, buf.Bytes())
	if entry.Fields["stage"] != "run" {
		t.Errorf("Expected call-site field to win, got %v", entry.Fields["stage"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DebugLevel,
		"DEBUG":   DebugLevel,
		"info":    InfoLevel,
		"WARNING": WarnLevel,
		"error":   ErrorLevel,
		"bogus":   InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFieldConstructors(t *testing.T) {
	err := errors.New("boom")
	cases := []struct {
		field Field
		key   string
	}{
		{String("k", "v"), "k"},
		{Int("n", 1), "n"},
		{Bool("b", true), "b"},
		{Duration("d", time.Second), "d"},
		{Error(err), "error"},
		{Component("c"), "component"},
		{Layer("north-star"), "layer"},
		{Node("business"), "node_id"},
		{File("b.yaml"), "file"},
		{Operation("resolve"), "operation"},
		{Count(7), "count"},
	}
	for _, tc := range cases {
		if tc.field.Key != tc.key {
			t.Errorf("Expected key %q, got %q", tc.key, tc.field.Key)
		}
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("discarded", String("k", "v"))
	if child := logger.With(Component("x")); child == nil {
		t.Error("With must return a usable logger")
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "resolve layers", File("business.yaml"))
	timer.End()

	entry := decodeEntry(t, buf.Bytes())
	if entry.Message != "resolve layers" {
		t.Errorf("Expected timer message, got %q", entry.Message)
	}
	if _, ok := entry.Fields["latency"]; !ok {
		t.Errorf("Expected latency field, got %v", entry.Fields)
	}
	if entry.Fields["file"] != "business.yaml" {
		t.Errorf("Expected file field to carry through, got %v", entry.Fields)
	}
}
