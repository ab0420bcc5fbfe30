package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"scriptsync/internal/clips"
	"scriptsync/internal/episode"
)

const clipColumns = `clip_id, episode, season, episode_no, kind, position, speaker,
    scene_info, target_text, matched_text, start_time, end_time, match_ratio,
    has_multi_speaker, subtitle_position, video_path, subtitle_path, run_id`

const insertClipSQL = `INSERT INTO clips (` + clipColumns + `)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// ReplaceEpisode records a completed run and swaps the episode's stored
// clips for the plan's clips in a single transaction.
func (s *Store) ReplaceEpisode(ctx context.Context, run Run, plan clips.Plan) error {
	ctx = ensureContext(ctx)
	if run.ID == "" {
		return errors.New("run id is required")
	}
	code := plan.Episode.String()
	if run.Episode == "" {
		run.Episode = code
	}
	if run.Episode != code {
		return fmt.Errorf("run episode %s does not match plan episode %s", run.Episode, code)
	}
	if run.Status == "" {
		run.Status = RunCompleted
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertRunSQL, runArgs(run)...); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM clips WHERE episode = ?", code); err != nil {
			return fmt.Errorf("delete clips: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, insertClipSQL)
		if err != nil {
			return fmt.Errorf("prepare clip insert: %w", err)
		}
		defer stmt.Close()
		for _, clip := range plan.Clips {
			if _, err := stmt.ExecContext(ctx,
				clip.ID,
				code,
				plan.Episode.Season,
				plan.Episode.Episode,
				string(clip.Kind),
				clip.Position,
				clip.Speaker,
				clip.SceneInfo,
				clip.TargetText,
				clip.MatchedText,
				clip.SubtitleStart,
				clip.SubtitleEnd,
				clip.Ratio,
				boolToInt(clip.HasMultiSpeaker),
				clip.SubtitlePosition,
				clip.VideoPath,
				clip.SubtitlePath,
				nullableString(run.ID),
			); err != nil {
				return fmt.Errorf("insert clip %s: %w", clip.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace episode %s: %w", code, err)
	}
	return nil
}

// ListClips returns stored clips in episode and clip order.
func (s *Store) ListClips(ctx context.Context, filter ClipFilter) ([]ClipRecord, error) {
	ctx = ensureContext(ctx)
	var (
		where []string
		args  []any
	)
	if filter.Episode != "" {
		where = append(where, "episode = ?")
		args = append(args, filter.Episode)
	}
	if filter.Speaker != "" {
		where = append(where, "speaker = ?")
		args = append(args, filter.Speaker)
	}
	query := `SELECT ` + clipColumns + ` FROM clips`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY episode, clip_id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query clips: %w", err)
	}
	defer rows.Close()

	var out []ClipRecord
	for rows.Next() {
		clip, err := scanClip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan clip: %w", err)
		}
		out = append(out, clip)
	}
	return out, rows.Err()
}

// DeleteEpisode removes an episode's clips and run history and returns the
// number of clips removed.
func (s *Store) DeleteEpisode(ctx context.Context, code episode.Code) (int64, error) {
	ctx = ensureContext(ctx)
	var removed int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM clips WHERE episode = ?", code.String())
		if err != nil {
			return fmt.Errorf("delete clips: %w", err)
		}
		removed, _ = res.RowsAffected()
		if _, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE episode = ?", code.String()); err != nil {
			return fmt.Errorf("delete runs: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete episode %s: %w", code, err)
	}
	return removed, nil
}

// EpisodeStats summarizes every episode with a completed run, ordered by
// episode code.
func (s *Store) EpisodeStats(ctx context.Context) ([]EpisodeSummary, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
        SELECT r.episode, r.segments, r.matched, r.sentence_matches, r.low_confidence, r.finished_at,
            (SELECT COUNT(*) FROM clips c WHERE c.episode = r.episode),
            (SELECT COALESCE(AVG(c.match_ratio), 0) FROM clips c WHERE c.episode = r.episode)
        FROM runs r
        WHERE r.rowid = (
            SELECT r2.rowid FROM runs r2
            WHERE r2.episode = r.episode AND r2.status = ?
            ORDER BY r2.finished_at DESC, r2.rowid DESC LIMIT 1
        )
        ORDER BY r.episode`, string(RunCompleted))
	if err != nil {
		return nil, fmt.Errorf("query episode stats: %w", err)
	}
	defer rows.Close()

	var out []EpisodeSummary
	for rows.Next() {
		var (
			summary  EpisodeSummary
			finished string
		)
		if err := rows.Scan(
			&summary.Episode,
			&summary.Segments,
			&summary.Matched,
			&summary.SentenceMatches,
			&summary.LowConfidence,
			&finished,
			&summary.Clips,
			&summary.AverageRatio,
		); err != nil {
			return nil, fmt.Errorf("scan episode stats: %w", err)
		}
		if t, err := parseTimeString(finished); err == nil {
			summary.LastRun = t
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}
