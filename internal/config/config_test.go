package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"scriptsync/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "scriptsync")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "scriptsync.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
	if cfg.Matching.MinRatio != 0.61 {
		t.Fatalf("unexpected min ratio: %v", cfg.Matching.MinRatio)
	}
	if cfg.Matching.LookaheadWindow != 100 || cfg.Matching.MaxGroupSize != 8 {
		t.Fatalf("unexpected window/group: %d/%d", cfg.Matching.LookaheadWindow, cfg.Matching.MaxGroupSize)
	}
	if cfg.Matching.MaxGapSeconds != 2.5 {
		t.Fatalf("unexpected gap: %v", cfg.Matching.MaxGapSeconds)
	}
	if cfg.Script.LogSpeaker != "PICARD" {
		t.Fatalf("unexpected log speaker: %q", cfg.Script.LogSpeaker)
	}
	if cfg.Script.SpeakerAliases["JEAN-LUC"] != "ETHAN" {
		t.Fatalf("expected default alias, got %v", cfg.Script.SpeakerAliases)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, cfg.Paths.ClipDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "scriptsync.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Matching struct {
			MinRatio float64 `toml:"min_ratio"`
			Workers  int     `toml:"workers"`
		} `toml:"matching"`
		Script struct {
			LogSpeaker     string            `toml:"log_speaker"`
			SpeakerAliases map[string]string `toml:"speaker_aliases"`
		} `toml:"script"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Matching.MinRatio = 0.7
	custom.Matching.Workers = 3
	custom.Script.LogSpeaker = " sisko "
	custom.Script.SpeakerAliases = map[string]string{"benjamin": "sisko", " ": "x"}
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Paths.DataDir != filepath.Join(tempDir, "data") {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.Matching.MinRatio != 0.7 || cfg.Matching.Workers != 3 {
		t.Fatalf("unexpected matching: %+v", cfg.Matching)
	}
	if cfg.Matching.MaxGroupSize != 8 {
		t.Fatalf("expected untouched defaults to survive, got %d", cfg.Matching.MaxGroupSize)
	}
	if cfg.Script.LogSpeaker != "SISKO" {
		t.Fatalf("expected upper-cased log speaker, got %q", cfg.Script.LogSpeaker)
	}
	if len(cfg.Script.SpeakerAliases) != 1 || cfg.Script.SpeakerAliases["BENJAMIN"] != "SISKO" {
		t.Fatalf("unexpected aliases: %v", cfg.Script.SpeakerAliases)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "scriptsync.toml")
	if err := os.WriteFile(configPath, []byte("[matching]\nmin_ratoi = 0.5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestLogLevelEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("SCRIPTSYNC_LOG_LEVEL", " DEBUG ")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected env level, got %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadMatching(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"ratio above one", func(c *config.Config) { c.Matching.MinRatio = 1.2 }, "matching.min_ratio"},
		{"negative override", func(c *config.Config) { c.Matching.SpeakerOverrideRatio = -0.1 }, "matching.speaker_override_ratio"},
		{"zero window", func(c *config.Config) { c.Matching.LookaheadWindow = 0 }, "lookahead_window"},
		{"group too large", func(c *config.Config) { c.Matching.MaxGroupSize = 100 }, "max_group_size"},
		{"negative gap", func(c *config.Config) { c.Matching.MaxGapSeconds = -1 }, "max_gap_seconds"},
		{"negative workers", func(c *config.Config) { c.Matching.Workers = -2 }, "workers"},
		{"negative padding", func(c *config.Config) { c.Clips.PaddingAfter = -0.5 }, "padding_after"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	defaults := config.Default()
	if cfg.Matching != defaults.Matching {
		t.Fatalf("sample matching section drifted from defaults: %+v", cfg.Matching)
	}
	if cfg.Clips != defaults.Clips {
		t.Fatalf("sample clips section drifted from defaults: %+v", cfg.Clips)
	}
}
