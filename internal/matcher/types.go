package matcher

// MatchResult is one accepted alignment of a target text to a subtitle span.
type MatchResult struct {
	TargetText       string  `json:"target_text"`
	MatchedText      string  `json:"matched_text"`
	StartTime        float64 `json:"start_time"`
	EndTime          float64 `json:"end_time"`
	Ratio            float64 `json:"match_ratio"`
	HasMultiSpeaker  bool    `json:"has_multi_speaker"`
	SubtitlePosition int     `json:"subtitle_position"`
	GroupSize        int     `json:"group_size"`
}

// SegmentMatch collects the matches for one dialogue segment.
type SegmentMatch struct {
	Position  int           `json:"position"`
	Speaker   string        `json:"speaker"`
	SceneInfo string        `json:"scene_info,omitempty"`
	Text      string        `json:"text"`
	Complete  *MatchResult  `json:"complete,omitempty"`
	Sentences []MatchResult `json:"sentences,omitempty"`
}

// Matched reports whether the segment has any accepted match.
func (m SegmentMatch) Matched() bool {
	return m.Complete != nil || len(m.Sentences) > 0
}

// Span identifies entries [Start, End) of the subtitle index.
type Span struct {
	Start        int
	End          int
	Ratio        float64
	MultiSpeaker bool
}

// Size returns the number of entries in the span.
func (s Span) Size() int {
	return s.End - s.Start
}
