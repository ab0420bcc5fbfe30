package workflow

import (
	"time"

	"scriptsync/internal/store"
)

// EpisodeReport summarizes one episode run.
type EpisodeReport struct {
	RunID           string          `json:"run_id"`
	Episode         string          `json:"episode"`
	Status          store.RunStatus `json:"status"`
	Segments        int             `json:"segments"`
	Matched         int             `json:"matched"`
	Unmatched       []int           `json:"unmatched_positions"`
	SentenceMatches int             `json:"sentence_matches"`
	LowConfidence   int             `json:"low_confidence"`
	Clips           int             `json:"clips"`
	Sidecars        int             `json:"sidecars"`
	Manifest        string          `json:"manifest,omitempty"`
	Duration        time.Duration   `json:"duration"`
	Error           string          `json:"error,omitempty"`
}

// BatchReport collects the reports of a batch in discovery order.
type BatchReport struct {
	Episodes []EpisodeReport `json:"episodes"`
}

// Count returns how many episodes ended with status.
func (b BatchReport) Count(status store.RunStatus) int {
	n := 0
	for _, ep := range b.Episodes {
		if ep.Status == status {
			n++
		}
	}
	return n
}
