package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readEntries(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestTraceWritesOnlyWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Configure(filepath.Join(t.TempDir(), "reset.log"))
	})
	if got := Path(); got != path {
		t.Fatalf("expected log path %q, got %q", path, got)
	}

	SetTraceEnabled(false)
	Trace("hidden", map[string]interface{}{"a": 1})
	SetTraceEnabled(true)
	Trace("select.change", map[string]interface{}{"select": "filter", "value": "A"})

	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d: %#v", len(entries), entries)
	}
	if entries[0]["event"] != "select.change" {
		t.Fatalf("unexpected event %v", entries[0]["event"])
	}
	payload, ok := entries[0]["payload"].(map[string]interface{})
	if !ok || payload["value"] != "A" {
		t.Fatalf("unexpected payload %#v", entries[0]["payload"])
	}
}

func TestErrorIgnoresNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	Configure(path)
	Error(nil)
	Error(errors.New("boom"))

	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0]["error"] != "boom" {
		t.Fatalf("expected error field boom, got %#v", entries[0])
	}
}

func TestFileLoggerKeepsInternalErrorsOffTheTerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popup.log")
	cfg := fileLoggerConfig(path)
	if len(cfg.ErrorOutputPaths) != 1 || cfg.ErrorOutputPaths[0] != path {
		t.Fatalf("expected zap errors to go to %q, got %v", path, cfg.ErrorOutputPaths)
	}
	for _, out := range cfg.OutputPaths {
		if out == "stderr" || out == "stdout" {
			t.Fatalf("expected no terminal output, got %v", cfg.OutputPaths)
		}
	}
}

func TestReplaceLoggerRestores(t *testing.T) {
	before := Logger()
	restore := ReplaceLogger(nil)
	if Logger() == before {
		t.Fatalf("expected logger to be replaced")
	}
	restore()
	if Logger() != before {
		t.Fatalf("expected previous logger restored")
	}
}
