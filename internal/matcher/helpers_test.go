package matcher

import (
	"testing"

	"scriptsync/internal/subtitles"
)

type cueSpec struct {
	start, end float64
	text       string
}

func buildIndex(t *testing.T, specs ...cueSpec) *subtitles.Index {
	t.Helper()
	cues := make([]subtitles.Cue, 0, len(specs))
	for i, s := range specs {
		cues = append(cues, subtitles.Cue{Index: i + 1, Start: s.start, End: s.end, Text: s.text})
	}
	return subtitles.BuildIndex(cues)
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
