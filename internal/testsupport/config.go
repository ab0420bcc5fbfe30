package testsupport

import (
	"path/filepath"
	"testing"

	"scriptsync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ScriptDir = filepath.Join(base, "scripts")
	cfgVal.Paths.SubtitleDir = filepath.Join(base, "subtitles")
	cfgVal.Paths.VideoDir = filepath.Join(base, "videos")
	cfgVal.Paths.ClipDir = filepath.Join(base, "clips")
	cfgVal.Matching.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithWorkers overrides the matcher pool size.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.Workers = n
	}
}

// WithEpisodeTimeout sets the per-episode matching budget in seconds.
func WithEpisodeTimeout(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.EpisodeTimeoutSeconds = seconds
	}
}

// WithoutSidecars disables per-clip subtitle files.
func WithoutSidecars() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Clips.WriteSubtitles = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
