package subtitles

// Retime shifts cues so that clipStart becomes zero. Times that would fall
// before the clip start are clamped to zero and cues are renumbered from 1.
func Retime(cues []Cue, clipStart float64) []Cue {
	out := make([]Cue, 0, len(cues))
	for i, cue := range cues {
		start := cue.Start - clipStart
		if start < 0 {
			start = 0
		}
		end := cue.End - clipStart
		if end < 0 {
			end = 0
		}
		out = append(out, Cue{Index: i + 1, Start: start, End: end, Text: cue.Text})
	}
	return out
}
