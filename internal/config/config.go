package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the directories the pipeline reads from and writes to.
type Paths struct {
	DataDir     string `toml:"data_dir"`
	LogDir      string `toml:"log_dir"`
	ScriptDir   string `toml:"script_dir"`
	SubtitleDir string `toml:"subtitle_dir"`
	VideoDir    string `toml:"video_dir"`
	ClipDir     string `toml:"clip_dir"`
}

// Matching tunes the subtitle span search.
type Matching struct {
	// MinRatio is the lowest similarity a match may have to be accepted.
	MinRatio float64 `toml:"min_ratio"`
	// LookaheadWindow bounds how many seed entries one span search visits.
	LookaheadWindow int `toml:"lookahead_window"`
	// MaxGroupSize caps the number of consecutive entries joined into one span.
	MaxGroupSize int `toml:"max_group_size"`
	// MaxGapSeconds stops span growth when the next entry starts this long
	// after the current span ends.
	MaxGapSeconds float64 `toml:"max_gap_seconds"`
	// NearCertainRatio ends span growth once a span scores above it.
	NearCertainRatio float64 `toml:"near_certain_ratio"`
	// SpeakerOverrideRatio accepts spans containing a dual-speaker separator
	// when they score above it.
	SpeakerOverrideRatio float64 `toml:"speaker_override_ratio"`
	// ShortPhraseWords marks targets at or below this many words as short;
	// short targets break ratio ties by position.
	ShortPhraseWords int `toml:"short_phrase_words"`
	// Workers is the matcher pool size. Zero uses one worker per CPU.
	Workers int `toml:"workers"`
	// EpisodeTimeoutSeconds is the wall-clock budget for matching one
	// episode. Zero disables the budget.
	EpisodeTimeoutSeconds int `toml:"episode_timeout_seconds"`
}

// Script configures speaker attribution in the script parser.
type Script struct {
	LogPhrases     []string          `toml:"log_phrases"`
	LogSpeaker     string            `toml:"log_speaker"`
	SpeakerAliases map[string]string `toml:"speaker_aliases"`
}

// Clips configures the clip plan handed to the extraction pipeline.
type Clips struct {
	PaddingBefore  float64 `toml:"padding_before"`
	PaddingAfter   float64 `toml:"padding_after"`
	WriteSubtitles bool    `toml:"write_subtitles"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for scriptsync.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Matching Matching `toml:"matching"`
	Script   Script   `toml:"script"`
	Clips    Clips    `toml:"clips"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("scriptsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories scriptsync writes to. Input
// directories (scripts, subtitles, videos) are left alone.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.ClipDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the matched-dialogue database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "scriptsync.db")
}

// LockPath returns the location of the batch lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "scriptsync.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
