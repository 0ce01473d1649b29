package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// TestJSONLogger_LevelFiltering verifies messages below the level are dropped
func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Debug("hidden")
	logger.Info("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Expected debug message to be filtered at INFO level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("Expected info message in output")
	}
}

// TestJSONLogger_Fields verifies structured fields land in the entry
func TestJSONLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("pass done", Pass("build_gsb"), Count(42))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to decode log entry: %v", err)
	}
	if entry.Message != "pass done" {
		t.Errorf("Expected message 'pass done', got %q", entry.Message)
	}
	if entry.Fields["pass"] != "build_gsb" {
		t.Errorf("Expected pass field 'build_gsb', got %v", entry.Fields["pass"])
	}
	if entry.Fields["count"] != float64(42) {
		t.Errorf("Expected count field 42, got %v", entry.Fields["count"])
	}
}

// TestJSONLogger_With verifies child loggers inherit pre-set fields
func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Phase("link"), RunID("r1"))
	child.Info("checking")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to decode log entry: %v", err)
	}
	if entry.Fields["phase"] != "link" {
		t.Errorf("Expected phase field 'link', got %v", entry.Fields["phase"])
	}
	if entry.Fields["run_id"] != "r1" {
		t.Errorf("Expected run_id field 'r1', got %v", entry.Fields["run_id"])
	}
}

// TestTimedOperation logs paired start/finish lines
func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "link architecture", Pass("link"))
	timer.End()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "started") {
		t.Errorf("Expected start line first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "finished") || !strings.Contains(lines[1], "took") {
		t.Errorf("Expected finish line with duration, got %q", lines[1])
	}
}
