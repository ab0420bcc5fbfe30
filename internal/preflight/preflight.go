package preflight

import (
	"scriptsync/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Pipeline runs the checks a batch needs: writable output directories and
// readable inputs.
func Pipeline(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir, ReadWrite),
		CheckDirectoryAccess("Clip directory", cfg.Paths.ClipDir, ReadWrite),
		CheckDirectoryAccess("Script directory", cfg.Paths.ScriptDir, ReadOnly),
		CheckDirectoryAccess("Subtitle directory", cfg.Paths.SubtitleDir, ReadOnly),
	}
}

// RunAll executes every check for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := Pipeline(cfg)
	results = append(results,
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir, ReadWrite),
		CheckDirectoryAccess("Video directory", cfg.Paths.VideoDir, ReadOnly),
		CheckDatabase(cfg.DatabasePath()),
		CheckLock(cfg.LockPath()),
	)
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
