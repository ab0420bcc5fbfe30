package store

import (
	"database/sql"
	"errors"
	"time"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(value time.Time) string {
	if value.IsZero() {
		value = time.Now()
	}
	return value.UTC().Format(timeLayout)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run      Run
		status   string
		started  string
		finished string
	)
	if err := row.Scan(
		&run.ID,
		&run.Episode,
		&status,
		&started,
		&finished,
		&run.Segments,
		&run.Matched,
		&run.SentenceMatches,
		&run.LowConfidence,
		&run.ErrorMessage,
	); err != nil {
		return Run{}, err
	}
	run.Status = RunStatus(status)
	if t, err := parseTimeString(started); err == nil {
		run.StartedAt = t
	}
	if t, err := parseTimeString(finished); err == nil {
		run.FinishedAt = t
	}
	return run, nil
}

func scanClip(row rowScanner) (ClipRecord, error) {
	var (
		clip  ClipRecord
		multi int
		runID sql.NullString
	)
	if err := row.Scan(
		&clip.ID,
		&clip.Episode,
		&clip.Season,
		&clip.EpisodeNo,
		&clip.Kind,
		&clip.Position,
		&clip.Speaker,
		&clip.SceneInfo,
		&clip.TargetText,
		&clip.MatchedText,
		&clip.StartTime,
		&clip.EndTime,
		&clip.Ratio,
		&multi,
		&clip.SubtitlePosition,
		&clip.VideoPath,
		&clip.SubtitlePath,
		&runID,
	); err != nil {
		return ClipRecord{}, err
	}
	clip.HasMultiSpeaker = multi != 0
	if runID.Valid {
		clip.RunID = runID.String
	}
	return clip, nil
}
