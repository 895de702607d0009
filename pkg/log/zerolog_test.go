package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterWithWriter(&buf, LevelDebug)

	logger.Info("state transition",
		String("from", "Loading"),
		Int("passes", 2),
		Bool("skip", true),
		Duration("elapsed", 1500*time.Millisecond),
		Err(errors.New("boom")),
	)

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e["message"] != "state transition" {
		t.Errorf("message = %v", e["message"])
	}
	if e["from"] != "Loading" {
		t.Errorf("from = %v, want Loading", e["from"])
	}
	if e["passes"] != float64(2) {
		t.Errorf("passes = %v, want 2", e["passes"])
	}
	if e["error"] != "boom" {
		t.Errorf("error = %v, want boom", e["error"])
	}
	if _, ok := e["elapsed"]; !ok {
		t.Error("elapsed field missing")
	}
}

func TestZerologAdapter_With(t *testing.T) {
	var buf bytes.Buffer
	base := NewZerologAdapterWithWriter(&buf, LevelInfo)
	child := base.With(Component("introscreen"), String("run_id", "abc"))

	child.Info("started")
	base.Info("plain")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0]["run_id"] != "abc" || entries[0]["component"] != "introscreen" {
		t.Errorf("child entry = %v, want run_id and component", entries[0])
	}
	if _, ok := entries[1]["run_id"]; ok {
		t.Error("parent logger inherited child fields")
	}
}

func TestZerologAdapter_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterWithWriter(&buf, LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 || entries[0]["message"] != "shown" {
		t.Errorf("entries = %v, want only the warning", entries)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" INFO ", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NewNoopLogger()
	l = l.With(String("k", "v"))
	l.Info("discarded")
	if l == nil {
		t.Error("With() returned nil")
	}
}
