package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" DEBUG ": slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: "debug", Format: "json"})
	logger.Debug("dispatch", "transport", "REST")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "dispatch" || entry["transport"] != "REST" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}

func TestNew_TextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: "warn"})
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Info should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "msg=shown") {
		t.Errorf("Expected text handler output, got %s", out)
	}
}
