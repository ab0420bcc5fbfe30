package subtitles

import (
	"sort"
	"strings"

	"scriptsync/internal/textutil"
)

// Entry is one searchable subtitle unit. Dual-speaker cards contribute one
// entry per dash line, each flagged MultiSpeaker.
type Entry struct {
	Start        float64
	End          float64
	Text         string
	Normalized   string
	MultiSpeaker bool
	// Cue is the position of the source cue in the indexed track.
	Cue int
}

// Index is the ordered, read-only sequence of entries for one track.
type Index struct {
	entries []Entry
	cues    []Cue
}

// BuildIndex converts cues into entries ordered by start time. Cues whose
// text normalizes to nothing are left out.
func BuildIndex(cues []Cue) *Index {
	ordered := append([]Cue(nil), cues...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	entries := make([]Entry, 0, len(ordered))
	for i, cue := range ordered {
		text := strings.TrimSpace(textutil.StripMarkup(cue.Text))
		lines := splitLines(text)
		if isDualSpeaker(lines) {
			for _, line := range lines {
				entries = append(entries, Entry{
					Start:        cue.Start,
					End:          cue.End,
					Text:         line,
					Normalized:   textutil.Normalize(strings.TrimLeft(line, "- ")),
					MultiSpeaker: true,
					Cue:          i,
				})
			}
			continue
		}
		joined := strings.Join(lines, " ")
		normalized := textutil.Normalize(joined)
		if normalized == "" {
			continue
		}
		entries = append(entries, Entry{
			Start:      cue.Start,
			End:        cue.End,
			Text:       joined,
			Normalized: normalized,
			Cue:        i,
		})
	}
	return &Index{entries: entries, cues: ordered}
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func isDualSpeaker(lines []string) bool {
	if len(lines) < 2 {
		return false
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "-") {
			return false
		}
	}
	return true
}

// Len returns the number of entries.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.entries)
}

// Entry returns the entry at position i.
func (x *Index) Entry(i int) Entry {
	return x.entries[i]
}

// Entries exposes the backing slice. Callers must not modify it.
func (x *Index) Entries() []Entry {
	if x == nil {
		return nil
	}
	return x.entries
}

// SourceCues returns the distinct source cues behind entries [start, end).
func (x *Index) SourceCues(start, end int) []Cue {
	if x == nil || start < 0 || end > len(x.entries) || start >= end {
		return nil
	}
	var out []Cue
	last := -1
	for _, entry := range x.entries[start:end] {
		if entry.Cue == last {
			continue
		}
		last = entry.Cue
		out = append(out, x.cues[entry.Cue])
	}
	return out
}
