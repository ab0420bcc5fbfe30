package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"scriptsync/internal/clips"
	"scriptsync/internal/config"
	"scriptsync/internal/episode"
	"scriptsync/internal/logging"
	"scriptsync/internal/matcher"
	"scriptsync/internal/script"
	"scriptsync/internal/services"
	"scriptsync/internal/store"
	"scriptsync/internal/subtitles"
)

// LowConfidenceRatio marks clips worth a manual look in reports.
const LowConfidenceRatio = 0.85

// Pipeline runs episodes against one configuration and store.
type Pipeline struct {
	cfg    *config.Config
	store  *store.Store
	base   *slog.Logger
	logger *slog.Logger
	parser *script.Parser
	now    func() time.Time
}

// RunOptions adjusts a single run.
type RunOptions struct {
	// Force reprocesses episodes that already have a completed run.
	Force bool
}

// NewPipeline constructs a pipeline. A nil logger discards output.
func NewPipeline(cfg *config.Config, st *store.Store, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		store:  st,
		base:   logger,
		logger: logging.NewComponentLogger(logger, "workflow"),
		parser: script.NewParser(script.OptionsFromConfig(cfg.Script)),
		now:    time.Now,
	}
}

// RunEpisode processes one episode. An episode that already has a completed
// run is skipped unless opts.Force is set; skipping is not an error. On
// failure the run is recorded as failed and the returned report carries
// whatever was computed before the failure.
func (p *Pipeline) RunEpisode(ctx context.Context, files episode.Files, opts RunOptions) (EpisodeReport, error) {
	started := p.now()
	report := EpisodeReport{
		RunID:   uuid.NewString(),
		Episode: files.Code.String(),
	}
	ctx = services.WithEpisode(ctx, report.Episode)
	ctx = services.WithRequestID(ctx, report.RunID)
	logger := logging.WithContext(ctx, p.logger)

	if !opts.Force {
		done, err := p.store.HasEpisode(ctx, files.Code)
		if err != nil {
			return report, fmt.Errorf("check episode %s: %w", report.Episode, err)
		}
		if done {
			report.Status = store.RunSkipped
			report.Duration = p.now().Sub(started)
			logger.Info("episode already processed",
				logging.Args(logging.DecisionAttrs("episode_skip", "skipped", "completed run exists; use --force to reprocess")...)...,
			)
			return report, nil
		}
	}

	logger.Info("episode started",
		logging.String(logging.FieldEventType, "episode_start"),
		logging.String("script_file", files.Script),
		logging.String("subtitle_file", files.Subtitles),
	)

	plan, err := p.process(ctx, logger, files, &report)
	report.Duration = p.now().Sub(started)
	if err != nil {
		report.Status = store.RunFailed
		p.recordFailure(ctx, logger, started, &report, err)
		return report, err
	}

	run := store.Run{
		ID:              report.RunID,
		Episode:         report.Episode,
		Status:          store.RunCompleted,
		StartedAt:       started,
		FinishedAt:      p.now(),
		Segments:        report.Segments,
		Matched:         report.Matched,
		SentenceMatches: report.SentenceMatches,
		LowConfidence:   report.LowConfidence,
	}
	if err := p.store.ReplaceEpisode(ctx, run, plan); err != nil {
		report.Status = store.RunFailed
		wrapped := fmt.Errorf("persist episode: %w", err)
		p.recordFailure(ctx, logger, started, &report, wrapped)
		return report, wrapped
	}
	if err := p.writeOutputs(&plan, &report); err != nil {
		report.Status = store.RunFailed
		report.Duration = p.now().Sub(started)
		p.failPersisted(ctx, logger, &report, err)
		return report, err
	}
	report.Status = store.RunCompleted
	report.Duration = p.now().Sub(started)

	logger.Info("episode completed",
		logging.String(logging.FieldEventType, "episode_complete"),
		logging.Int("segments", report.Segments),
		logging.Int("matched", report.Matched),
		logging.Int("unmatched", len(report.Unmatched)),
		logging.Int("sentence_matches", report.SentenceMatches),
		logging.Int("low_confidence", report.LowConfidence),
		logging.Int("clips", report.Clips),
		logging.Duration("episode_duration", report.Duration),
	)
	return report, nil
}

func (p *Pipeline) process(ctx context.Context, logger *slog.Logger, files episode.Files, report *EpisodeReport) (clips.Plan, error) {
	segments, err := p.parser.ParseFile(files.Script)
	if err != nil {
		return clips.Plan{}, err
	}
	report.Segments = len(segments)
	if len(segments) == 0 {
		logging.WarnWithContext(logger, "script produced no dialogue segments", "script_empty",
			logging.String("script_file", files.Script),
			logging.String(logging.FieldErrorHint, "check that dialogue lines use the SPEAKER: text form"),
			logging.String(logging.FieldImpact, "episode yields no clips"),
		)
	}

	cues, err := subtitles.ParseSRTFile(files.Subtitles)
	if err != nil {
		return clips.Plan{}, err
	}
	cues, stats := subtitles.CleanCues(cues)
	if stats.RemovedCues > 0 || stats.EmptyCues > 0 {
		logger.Debug("subtitle cues cleaned",
			logging.Int("removed_cues", stats.RemovedCues),
			logging.Int("empty_cues", stats.EmptyCues),
		)
	}
	idx := subtitles.BuildIndex(cues)

	matches, err := p.match(ctx, idx, segments)
	if err != nil {
		return clips.Plan{}, err
	}
	report.Matched = len(matches)
	report.Unmatched = matcher.UnmatchedPositions(segments, matches)
	for _, m := range matches {
		report.SentenceMatches += len(m.Sentences)
	}

	plan := clips.Build(files.Code, files.Video, matches, idx, clips.Options{
		PaddingBefore: p.cfg.Clips.PaddingBefore,
		PaddingAfter:  p.cfg.Clips.PaddingAfter,
		OutputDir:     p.cfg.Paths.ClipDir,
	})
	report.Clips = len(plan.Clips)
	report.LowConfidence = plan.LowConfidence(LowConfidenceRatio)
	if p.cfg.Clips.WriteSubtitles {
		plan.AssignSidecars()
	}
	return plan, nil
}

// writeOutputs writes sidecars and the manifest for a persisted plan.
func (p *Pipeline) writeOutputs(plan *clips.Plan, report *EpisodeReport) error {
	if p.cfg.Clips.WriteSubtitles {
		written, err := plan.WriteSidecars()
		report.Sidecars = written
		if err != nil {
			return err
		}
	}
	manifest, err := plan.WriteManifest()
	if err != nil {
		return err
	}
	report.Manifest = manifest
	return nil
}

func (p *Pipeline) match(ctx context.Context, idx *subtitles.Index, segments []script.DialogSegment) ([]matcher.SegmentMatch, error) {
	ctx = services.WithStage(ctx, "matching")
	if budget := p.cfg.Matching.EpisodeTimeoutSeconds; budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(budget)*time.Second)
		defer cancel()
	}
	dm := matcher.NewDialogMatcher(idx, matcher.OptionsFromConfig(p.cfg.Matching), p.base)
	return dm.MatchAll(ctx, segments)
}

// failPersisted flips an already stored run to failed after its output
// files could not be written.
func (p *Pipeline) failPersisted(ctx context.Context, logger *slog.Logger, report *EpisodeReport, cause error) {
	logger.Error("episode outputs failed",
		logging.String(logging.FieldEventType, "episode_failed"),
		logging.String("error_kind", services.Kind(cause)),
		logging.Error(cause),
	)
	if err := p.store.FailRun(context.WithoutCancel(ctx), report.RunID, p.now(), cause.Error()); err != nil {
		logger.Warn("failed to mark run failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "run_record_failed"),
			logging.String(logging.FieldErrorHint, "check database access"),
			logging.String(logging.FieldImpact, "episode stays marked completed without output files"),
		)
	}
}

func (p *Pipeline) recordFailure(ctx context.Context, logger *slog.Logger, started time.Time, report *EpisodeReport, cause error) {
	logger.Error("episode failed",
		logging.String(logging.FieldEventType, "episode_failed"),
		logging.String("error_kind", services.Kind(cause)),
		logging.Error(cause),
	)
	if errors.Is(cause, context.Canceled) {
		return
	}
	run := store.Run{
		ID:              report.RunID,
		Episode:         report.Episode,
		Status:          store.RunFailed,
		StartedAt:       started,
		FinishedAt:      p.now(),
		Segments:        report.Segments,
		Matched:         report.Matched,
		SentenceMatches: report.SentenceMatches,
		LowConfidence:   report.LowConfidence,
		ErrorMessage:    cause.Error(),
	}
	// The caller's context may already be done; the failure row should land anyway.
	if err := p.store.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		logger.Warn("failed to record failed run",
			logging.Error(err),
			logging.String(logging.FieldEventType, "run_record_failed"),
			logging.String(logging.FieldErrorHint, "check database access"),
			logging.String(logging.FieldImpact, "run history is missing this failure"),
		)
	}
}
