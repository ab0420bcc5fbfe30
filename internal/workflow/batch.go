package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"scriptsync/internal/episode"
	"scriptsync/internal/logging"
	"scriptsync/internal/preflight"
	"scriptsync/internal/services"
	"scriptsync/internal/store"
)

// RunBatch discovers video files under path and runs each episode in name
// order. It holds the data directory lock for the whole batch and keeps
// going past per-episode failures; their errors are joined in the result.
// Cancellation stops the batch after the current episode.
func (p *Pipeline) RunBatch(ctx context.Context, path string, opts RunOptions) (BatchReport, error) {
	var report BatchReport

	lock := flock.New(p.cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return report, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return report, services.Wrap(services.ErrBusy, "batch", "lock", fmt.Sprintf("another scriptsync run holds %s", p.cfg.LockPath()), nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			p.logger.Warn("failed to release batch lock",
				logging.Error(err),
				logging.String(logging.FieldEventType, "lock_release_failed"),
				logging.String(logging.FieldErrorHint, "remove the lock file if no other run is active"),
				logging.String(logging.FieldImpact, "next batch may report busy"),
			)
		}
	}()

	if failed := preflight.Failed(preflight.Pipeline(p.cfg)); len(failed) > 0 {
		details := make([]string, 0, len(failed))
		for _, r := range failed {
			details = append(details, r.Name+": "+r.Detail)
		}
		return report, services.Wrap(services.ErrConfiguration, "batch", "preflight", strings.Join(details, "; "), nil)
	}

	videos, err := episode.Discover(path)
	if err != nil {
		return report, err
	}
	p.logger.Info("batch started",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.String("path", path),
		logging.Int("episodes", len(videos)),
	)

	var errs []error
	for _, video := range videos {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		files, err := episode.Resolve(video, p.cfg.Paths.ScriptDir, p.cfg.Paths.SubtitleDir)
		if err != nil {
			logging.WarnWithContext(p.logger, "episode inputs missing", "episode_inputs_missing",
				logging.String("video", video),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "place <name>.txt in script_dir and <name>.srt in subtitle_dir"),
				logging.String(logging.FieldImpact, "episode skipped"),
			)
			label := filepath.Base(video)
			if files.Code != (episode.Code{}) {
				label = files.Code.String()
			}
			report.Episodes = append(report.Episodes, EpisodeReport{
				Episode: label,
				Status:  store.RunFailed,
				Error:   err.Error(),
			})
			errs = append(errs, fmt.Errorf("%s: %w", video, err))
			continue
		}
		epReport, err := p.RunEpisode(ctx, files, opts)
		if err != nil {
			epReport.Error = err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", files.Code, err))
		}
		report.Episodes = append(report.Episodes, epReport)
	}

	p.logger.Info("batch completed",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("completed", report.Count(store.RunCompleted)),
		logging.Int("skipped", report.Count(store.RunSkipped)),
		logging.Int("failed", report.Count(store.RunFailed)),
	)
	return report, errors.Join(errs...)
}
