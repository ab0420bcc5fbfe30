package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scriptsync/internal/episode"
)

const runColumns = `id, episode, status, started_at, finished_at, segments, matched,
    sentence_matches, low_confidence, error_message`

const insertRunSQL = `INSERT INTO runs (` + runColumns + `)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func runArgs(run Run) []any {
	return []any{
		run.ID,
		run.Episode,
		string(run.Status),
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		run.Segments,
		run.Matched,
		run.SentenceMatches,
		run.LowConfidence,
		run.ErrorMessage,
	}
}

// RecordRun appends a run without touching stored clips. It is used for
// failed and skipped runs.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	if run.ID == "" || run.Episode == "" {
		return errors.New("run id and episode are required")
	}
	if _, err := s.execWithRetry(ctx, insertRunSQL, runArgs(run)...); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FailRun marks an existing run failed with message. It is used when work
// after persistence fails, so the episode is picked up again by the next run.
func (s *Store) FailRun(ctx context.Context, id string, finished time.Time, message string) error {
	res, err := s.execWithRetry(ctx,
		`UPDATE runs SET status = ?, finished_at = ?, error_message = ? WHERE id = ?`,
		string(RunFailed), formatTime(finished), message, id,
	)
	if err != nil {
		return fmt.Errorf("fail run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("fail run %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

// ListRuns returns runs newest first. A zero limit returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY finished_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LastCompletedRun returns the newest completed run for an episode, or nil.
func (s *Store) LastCompletedRun(ctx context.Context, code episode.Code) (*Run, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs
         WHERE episode = ? AND status = ?
         ORDER BY finished_at DESC, rowid DESC LIMIT 1`,
		code.String(), string(RunCompleted),
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last run: %w", err)
	}
	return &run, nil
}

// HasEpisode reports whether an episode already has a completed run.
func (s *Store) HasEpisode(ctx context.Context, code episode.Code) (bool, error) {
	run, err := s.LastCompletedRun(ctx, code)
	if err != nil {
		return false, err
	}
	return run != nil, nil
}
