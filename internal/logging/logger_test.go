package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scriptsync/internal/config"
	"scriptsync/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConsoleHandlerFormatsComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl, false))
	logger = NewComponentLogger(logger, "matcher")

	logger.Info("segment matched", String(FieldSpeaker, "ETHAN"), Float64(FieldRatio, 0.75), String("text", "make it so"))

	line := buf.String()
	if !strings.Contains(line, " INFO matcher: segment matched") {
		t.Fatalf("unexpected prefix: %q", line)
	}
	if !strings.Contains(line, "speaker=ETHAN") || !strings.Contains(line, "ratio=0.75") {
		t.Fatalf("missing fields: %q", line)
	}
	if !strings.Contains(line, `text="make it so"`) {
		t.Fatalf("expected quoted value: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should render as prefix only: %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl, false))

	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered, got %q", buf.String())
	}
	logger.Warn("loud")
	if !strings.Contains(buf.String(), "WARN loud") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestConsoleHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar), false))
	logger.WithGroup("span").Info("found", Int("start", 4), Int("end", 6))

	if !strings.Contains(buf.String(), "span.start=4 span.end=6") {
		t.Fatalf("expected grouped keys, got %q", buf.String())
	}
}

func TestJSONHandlerRenamesKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newJSONHandler(&buf, new(slog.LevelVar), false))
	logger.Warn("low confidence", Int(FieldPosition, 12))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["level"] != "warn" {
		t.Fatalf("level = %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatal("expected ts key")
	}
	if payload[FieldPosition] != float64(12) {
		t.Fatalf("position = %v", payload[FieldPosition])
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Format = "json"

	logger, err := NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("hello file")

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, LogFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello file") {
		t.Fatalf("log file missing message: %q", data)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar), false))

	ctx := services.WithEpisode(context.Background(), "S03E07")
	ctx = services.WithRequestID(ctx, "run-1")
	WithContext(ctx, logger).Info("start")

	out := buf.String()
	if !strings.Contains(out, "episode=S03E07") || !strings.Contains(out, "correlation_id=run-1") {
		t.Fatalf("missing context fields: %q", out)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar), false))

	WarnWithContext(logger, "segment unmatched", "segment_unmatched", String(FieldImpact, "line dropped"))

	out := buf.String()
	if !strings.Contains(out, "event_type=segment_unmatched") {
		t.Fatalf("missing event type: %q", out)
	}
	if !strings.Contains(out, `impact="line dropped"`) {
		t.Fatalf("caller impact overwritten: %q", out)
	}
	if !strings.Contains(out, "error_hint=") {
		t.Fatalf("missing default hint: %q", out)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should not be enabled")
	}
	WarnWithContext(nil, "ignored", "noop")
}
