package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScript()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		key   string
		value *string
	}{
		{"paths.data_dir", &c.Paths.DataDir},
		{"paths.log_dir", &c.Paths.LogDir},
		{"paths.script_dir", &c.Paths.ScriptDir},
		{"paths.subtitle_dir", &c.Paths.SubtitleDir},
		{"paths.video_dir", &c.Paths.VideoDir},
		{"paths.clip_dir", &c.Paths.ClipDir},
	}
	for _, field := range fields {
		expanded, err := expandPath(strings.TrimSpace(*field.value))
		if err != nil {
			return fmt.Errorf("%s: %w", field.key, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeScript() {
	phrases := make([]string, 0, len(c.Script.LogPhrases))
	seen := make(map[string]struct{}, len(c.Script.LogPhrases))
	for _, phrase := range c.Script.LogPhrases {
		normalized := strings.ToLower(strings.TrimSpace(phrase))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		phrases = append(phrases, normalized)
	}
	c.Script.LogPhrases = phrases

	c.Script.LogSpeaker = strings.ToUpper(strings.TrimSpace(c.Script.LogSpeaker))
	if c.Script.LogSpeaker == "" {
		c.Script.LogSpeaker = defaultLogSpeaker
	}

	aliases := make(map[string]string, len(c.Script.SpeakerAliases))
	for alias, canonical := range c.Script.SpeakerAliases {
		alias = strings.ToUpper(strings.TrimSpace(alias))
		canonical = strings.ToUpper(strings.TrimSpace(canonical))
		if alias == "" || canonical == "" {
			continue
		}
		aliases[alias] = canonical
	}
	c.Script.SpeakerAliases = aliases
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("SCRIPTSYNC_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
