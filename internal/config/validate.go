package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateClips(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	m := c.Matching
	if err := ensureUnitInterval(map[string]float64{
		"matching.min_ratio":              m.MinRatio,
		"matching.near_certain_ratio":     m.NearCertainRatio,
		"matching.speaker_override_ratio": m.SpeakerOverrideRatio,
	}); err != nil {
		return err
	}
	if m.LookaheadWindow <= 0 {
		return errors.New("matching.lookahead_window must be positive")
	}
	if m.MaxGroupSize <= 0 || m.MaxGroupSize > maxGroupSizeLimit {
		return fmt.Errorf("matching.max_group_size must be between 1 and %d", maxGroupSizeLimit)
	}
	if m.MaxGapSeconds < 0 {
		return errors.New("matching.max_gap_seconds must be >= 0")
	}
	if m.ShortPhraseWords < 0 {
		return errors.New("matching.short_phrase_words must be >= 0")
	}
	if m.Workers < 0 {
		return errors.New("matching.workers must be >= 0")
	}
	if m.EpisodeTimeoutSeconds < 0 {
		return errors.New("matching.episode_timeout_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateClips() error {
	if c.Clips.PaddingBefore < 0 {
		return errors.New("clips.padding_before must be >= 0")
	}
	if c.Clips.PaddingAfter < 0 {
		return errors.New("clips.padding_after must be >= 0")
	}
	return nil
}

func ensureUnitInterval(values map[string]float64) error {
	for key, value := range values {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", key)
		}
	}
	return nil
}
