package matcher

import "scriptsync/internal/config"

// Options tunes span search and the worker pool.
type Options struct {
	MinRatio         float64
	Window           int
	MaxGroupSize     int
	MaxGap           float64
	NearCertain      float64
	SpeakerOverride  float64
	ShortPhraseWords int
	// Workers is the pool size; zero or less uses one worker per CPU.
	Workers int
}

// DefaultOptions returns the stock search parameters.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Matching)
}

// OptionsFromConfig maps the [matching] section onto Options.
func OptionsFromConfig(cfg config.Matching) Options {
	return Options{
		MinRatio:         cfg.MinRatio,
		Window:           cfg.LookaheadWindow,
		MaxGroupSize:     cfg.MaxGroupSize,
		MaxGap:           cfg.MaxGapSeconds,
		NearCertain:      cfg.NearCertainRatio,
		SpeakerOverride:  cfg.SpeakerOverrideRatio,
		ShortPhraseWords: cfg.ShortPhraseWords,
		Workers:          cfg.Workers,
	}
}

func (o Options) withDefaults() Options {
	def := config.Default().Matching
	if o.Window <= 0 {
		o.Window = def.LookaheadWindow
	}
	if o.MaxGroupSize <= 0 {
		o.MaxGroupSize = def.MaxGroupSize
	}
	if o.MaxGap < 0 {
		o.MaxGap = 0
	}
	return o
}
