package store

import (
	"time"
)

// RunStatus records how an episode run ended.
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
	RunSkipped   RunStatus = "skipped"
)

// Run is one pipeline execution for an episode.
type Run struct {
	ID              string    `json:"id"`
	Episode         string    `json:"episode"`
	Status          RunStatus `json:"status"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	Segments        int       `json:"segments"`
	Matched         int       `json:"matched"`
	SentenceMatches int       `json:"sentence_matches"`
	LowConfidence   int       `json:"low_confidence"`
	ErrorMessage    string    `json:"error_message,omitempty"`
}

// ClipRecord is a persisted clip row.
type ClipRecord struct {
	ID               string  `json:"clip_id"`
	Episode          string  `json:"episode"`
	Season           int     `json:"season"`
	EpisodeNo        int     `json:"episode_no"`
	Kind             string  `json:"kind"`
	Position         int     `json:"position"`
	Speaker          string  `json:"speaker"`
	SceneInfo        string  `json:"scene_info,omitempty"`
	TargetText       string  `json:"target_text"`
	MatchedText      string  `json:"matched_text"`
	StartTime        float64 `json:"start_time"`
	EndTime          float64 `json:"end_time"`
	Ratio            float64 `json:"match_ratio"`
	HasMultiSpeaker  bool    `json:"has_multi_speaker"`
	SubtitlePosition int     `json:"subtitle_position"`
	VideoPath        string  `json:"video_path,omitempty"`
	SubtitlePath     string  `json:"subtitle_path,omitempty"`
	RunID            string  `json:"run_id,omitempty"`
}

// ClipFilter narrows ListClips. Zero values match everything.
type ClipFilter struct {
	Episode string
	Speaker string
	Limit   int
}

// EpisodeSummary aggregates the latest completed run of an episode with its
// stored clips.
type EpisodeSummary struct {
	Episode         string    `json:"episode"`
	Segments        int       `json:"segments"`
	Matched         int       `json:"matched"`
	SentenceMatches int       `json:"sentence_matches"`
	LowConfidence   int       `json:"low_confidence"`
	Clips           int       `json:"clips"`
	AverageRatio    float64   `json:"average_ratio"`
	LastRun         time.Time `json:"last_run"`
}

// Unmatched is the number of segments without a complete or sentence match.
func (s EpisodeSummary) Unmatched() int {
	return max(0, s.Segments-s.Matched)
}

// MatchRate is matched/segments, zero when the episode had no segments.
func (s EpisodeSummary) MatchRate() float64 {
	if s.Segments == 0 {
		return 0
	}
	return float64(s.Matched) / float64(s.Segments)
}
