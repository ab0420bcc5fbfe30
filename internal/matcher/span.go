package matcher

import (
	"strings"

	"scriptsync/internal/subtitles"
	"scriptsync/internal/textutil"
)

// gapEpsilon absorbs float error in subtitle timestamps when comparing gaps.
const gapEpsilon = 1e-9

// speakerSeparator marks a second speaker inside joined subtitle text.
const speakerSeparator = " - "

// SpanMatcher finds the best subtitle span for target texts. It is safe for
// concurrent use; all state it holds is read-only.
type SpanMatcher struct {
	entries []subtitles.Entry
	opts    Options
}

// NewSpanMatcher constructs a matcher over idx.
func NewSpanMatcher(idx *subtitles.Index, opts Options) *SpanMatcher {
	return &SpanMatcher{entries: idx.Entries(), opts: opts.withDefaults()}
}

// FindBestSpan searches the lookahead window starting at start for target.
// expected is the target's script position, used to break ties for short
// targets.
func (m *SpanMatcher) FindBestSpan(target string, start, expected int) (MatchResult, bool) {
	s := m.NewSearch(target, expected)
	span, ok := s.Window(start)
	if !ok || !s.Accept(span) {
		return MatchResult{}, false
	}
	return m.Result(target, span), true
}

// FindBestSpanExhaustive scans every outer position of the index and keeps
// the single best accepted window winner.
func (m *SpanMatcher) FindBestSpanExhaustive(target string, expected int) (MatchResult, bool) {
	span, ok := m.NewSearch(target, expected).Exhaustive()
	if !ok {
		return MatchResult{}, false
	}
	return m.Result(target, span), true
}

// Result converts a span into a MatchResult for target.
func (m *SpanMatcher) Result(target string, span Span) MatchResult {
	return MatchResult{
		TargetText:       target,
		MatchedText:      m.joinedText(span),
		StartTime:        m.entries[span.Start].Start,
		EndTime:          m.entries[span.End-1].End,
		Ratio:            span.Ratio,
		HasMultiSpeaker:  span.MultiSpeaker,
		SubtitlePosition: span.Start,
		GroupSize:        span.Size(),
	}
}

func (m *SpanMatcher) joinedText(span Span) string {
	parts := make([]string, 0, span.Size())
	for _, entry := range m.entries[span.Start:span.End] {
		parts = append(parts, entry.Text)
	}
	return strings.Join(parts, " ")
}

// Search scores one target against the index. Candidate spans are computed
// once per seed and reused by every window that contains the seed. A Search
// is not safe for concurrent use.
type Search struct {
	m        *SpanMatcher
	pattern  *textutil.Pattern
	short    bool
	expected int
	seeds    []seedScore
}

type candidate struct {
	end   int
	ratio float64
	multi bool
}

type seedScore struct {
	computed bool
	single   float64
	// ext is the best extended span (two or more entries); ext.end is zero
	// when the seed could not be extended.
	ext candidate
}

// NewSearch prepares a search for target.
func (m *SpanMatcher) NewSearch(target string, expected int) *Search {
	normalized := textutil.Normalize(target)
	return &Search{
		m:        m,
		pattern:  textutil.NewPattern(normalized),
		short:    textutil.WordCount(normalized) <= m.opts.ShortPhraseWords,
		expected: expected,
		seeds:    make([]seedScore, len(m.entries)),
	}
}

// Window returns the best span seeded in [start, start+Window). Seeds on
// multi-speaker entries are skipped. The result is not yet checked against
// the acceptance rules.
func (s *Search) Window(start int) (Span, bool) {
	if s.pattern.Len() == 0 {
		return Span{}, false
	}
	if start < 0 {
		start = 0
	}
	stop := min(start+s.m.opts.Window, len(s.m.entries))

	var best Span
	found := false
	for i := start; i < stop; i++ {
		if s.m.entries[i].MultiSpeaker {
			continue
		}
		score := s.score(i)
		switch {
		case !found || score.single > best.Ratio:
			best, found = Span{Start: i, End: i + 1, Ratio: score.single}, true
		case s.short && score.single == best.Ratio && s.closer(i, best.Start):
			best = Span{Start: i, End: i + 1, Ratio: score.single}
		}
		if score.ext.end > 0 && score.ext.ratio > best.Ratio {
			best = Span{Start: i, End: score.ext.end, Ratio: score.ext.ratio, MultiSpeaker: score.ext.multi}
		}
	}
	return best, found
}

// Exhaustive evaluates the window at every outer position and keeps the
// highest scoring winner that passes Accept. A window whose winner is
// rejected contributes nothing. Short targets prefer an equal score whose
// span starts closer to the expected position.
func (s *Search) Exhaustive() (Span, bool) {
	var best Span
	found := false
	for i := range s.m.entries {
		span, ok := s.Window(i)
		if !ok || !s.Accept(span) {
			continue
		}
		switch {
		case !found || span.Ratio > best.Ratio:
			best, found = span, true
		case s.short && span.Ratio == best.Ratio && s.closer(span.Start, best.Start):
			best = span
		}
	}
	return best, found
}

// Accept applies the minimum ratio and the dual-speaker separator rule.
func (s *Search) Accept(span Span) bool {
	if span.Size() <= 0 || span.Ratio < s.m.opts.MinRatio {
		return false
	}
	if span.Ratio > s.m.opts.SpeakerOverride {
		return true
	}
	return !strings.Contains(s.m.joinedText(span), speakerSeparator)
}

func (s *Search) closer(a, b int) bool {
	return abs(a-s.expected) < abs(b-s.expected)
}

// score grows the span seeded at i and records the best extension. Growth
// stops at MaxGroupSize entries, at a gap wider than MaxGap, or as soon as an
// extended span scores above NearCertain. A near-certain seed is still
// extended.
func (s *Search) score(i int) seedScore {
	if s.seeds[i].computed {
		return s.seeds[i]
	}
	opts := s.m.opts
	entries := s.m.entries

	seed := entries[i]
	text := seed.Normalized
	ratio := s.pattern.Ratio(text)
	result := seedScore{computed: true, single: ratio}

	lastEnd := seed.End
	multi := seed.MultiSpeaker
	limit := min(i+opts.MaxGroupSize, len(entries))
	for j := i + 1; j < limit; j++ {
		next := entries[j]
		if next.Start-lastEnd > opts.MaxGap+gapEpsilon {
			break
		}
		text = joinEllipsis(text, next.Normalized)
		lastEnd = next.End
		multi = multi || next.MultiSpeaker

		ratio = s.pattern.Ratio(text)
		if result.ext.end == 0 || ratio > result.ext.ratio {
			result.ext = candidate{end: j + 1, ratio: ratio, multi: multi}
		}
		if ratio > opts.NearCertain {
			break
		}
	}
	s.seeds[i] = result
	return result
}

// joinEllipsis appends b to a. A trailing ellipsis on a and a leading one on
// b collapse into a single word break.
func joinEllipsis(a, b string) string {
	if strings.HasSuffix(a, "...") {
		return strings.TrimRight(a, ".") + " " + strings.TrimLeft(b, ".")
	}
	return a + " " + b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
