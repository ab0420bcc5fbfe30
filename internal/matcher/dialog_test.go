package matcher

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"scriptsync/internal/script"
	"scriptsync/internal/services"
	"scriptsync/internal/subtitles"
)

func TestSentenceMatchesRejectMergedCards(t *testing.T) {
	idx := buildIndex(t,
		cueSpec{10, 13, "Shields are holding at forty percent. Hull breach on deck five."},
		cueSpec{13.5, 14.5, "We cannot take"},
		cueSpec{14.6, 15.8, "another hit."},
	)
	d := NewDialogMatcher(idx, DefaultOptions(), nil)

	got := d.MatchSegment(script.DialogSegment{
		Speaker:  "WORF",
		Text:     "Shields are holding at forty percent. Hull breach on deck five. We cannot take another hit.",
		Position: 0,
	})

	if got.Complete == nil {
		t.Fatal("expected a complete match")
	}
	if got.Complete.GroupSize != 3 || got.Complete.StartTime != 10 || got.Complete.EndTime != 15.8 {
		t.Fatalf("complete = %+v", got.Complete)
	}
	if len(got.Sentences) != 1 {
		t.Fatalf("sentence matches = %+v, want only the third sentence", got.Sentences)
	}
	third := got.Sentences[0]
	if third.TargetText != "We cannot take another hit." || third.SubtitlePosition != 1 || third.GroupSize != 2 {
		t.Fatalf("sentence match = %+v", third)
	}
}

func TestSingleSentenceSkipsSentenceMatching(t *testing.T) {
	idx := buildIndex(t, cueSpec{120, 121.2, "Make it so."})
	got := NewDialogMatcher(idx, DefaultOptions(), nil).MatchSegment(script.DialogSegment{Speaker: "ETHAN", Text: "Make it so.", Position: 0})
	if got.Complete == nil || len(got.Sentences) != 0 {
		t.Fatalf("match = %+v", got)
	}
	if !got.Matched() {
		t.Fatal("segment should report matched")
	}
}

func TestMatchAllTieBreakPerSegment(t *testing.T) {
	specs := make([]cueSpec, 0, 45)
	for i := 0; i < 45; i++ {
		text := fmt.Sprintf("Status report from deck %d.", i)
		if i == 3 || i == 38 {
			text = "Engage."
		}
		specs = append(specs, cueSpec{float64(i) * 5, float64(i)*5 + 1, text})
	}
	d := NewDialogMatcher(buildIndex(t, specs...), DefaultOptions(), nil)

	segments := []script.DialogSegment{
		{Speaker: "ETHAN", Text: "Engage.", Position: 2},
		{Speaker: "ETHAN", Text: "Engage.", Position: 40},
	}
	got, err := d.MatchAll(context.Background(), segments)
	if err != nil {
		t.Fatalf("MatchAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches", len(got))
	}
	if got[0].Position != 2 || got[0].Complete.SubtitlePosition != 3 {
		t.Fatalf("first = %+v", got[0].Complete)
	}
	if got[1].Position != 40 || got[1].Complete.SubtitlePosition != 38 {
		t.Fatalf("second = %+v", got[1].Complete)
	}
}

var episodeLines = []string{
	"Captain's log, stardate 41153.7. Our destination is planet Deneb Four.",
	"Make it so.",
	"I am fully functional and programmed in multiple techniques.",
	"Shields are holding at forty percent. Hull breach on deck five.",
	"Engage.",
	"There is no other way.",
	"Mister Worf, open a channel to the lead vessel.",
	"Channel open, sir.",
	"This is Captain Ethan of the starship Enterprise. Stand down your weapons.",
	"They are powering up their forward array!",
	"Ready phasers. Target their weapons systems only.",
	"Tea. Earl Grey. Hot.",
	"We have lost contact with the away team.",
	"Engage.",
	"A line nobody ever says on screen in this episode.",
}

// syntheticEpisode builds a track that splits long lines across two cards,
// drops one line, and inserts a dual-speaker card.
func syntheticEpisode(t *testing.T) ([]script.DialogSegment, *subtitles.Index) {
	t.Helper()
	var segments []script.DialogSegment
	var cues []subtitles.Cue
	clock := 5.0
	add := func(text string, dur float64) {
		cues = append(cues, subtitles.Cue{Index: len(cues) + 1, Start: clock, End: clock + dur, Text: text})
		clock += dur + 0.3
	}
	for i, line := range episodeLines {
		segments = append(segments, script.DialogSegment{Speaker: "SPEAKER", Text: line, Position: i})
		switch {
		case i == len(episodeLines)-1:
		case len(line) > 40:
			mid := len(line) / 2
			for mid < len(line) && line[mid] != ' ' {
				mid++
			}
			add(line[:mid], 1.5)
			add(line[mid+1:], 1.5)
		default:
			add(line, 1.2)
		}
		if i == 7 {
			add("- Who are you?\n- Nobody.", 1.0)
		}
		clock += 3
	}
	return segments, subtitles.BuildIndex(cues)
}

func TestMatchAllProperties(t *testing.T) {
	segments, idx := syntheticEpisode(t)
	opts := DefaultOptions()
	opts.Workers = 3
	d := NewDialogMatcher(idx, opts, nil)

	first, err := d.MatchAll(context.Background(), segments)
	if err != nil {
		t.Fatalf("MatchAll: %v", err)
	}
	second, err := d.MatchAll(context.Background(), segments)
	if err != nil {
		t.Fatalf("MatchAll: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("MatchAll is not deterministic")
	}
	if len(first) == 0 {
		t.Fatal("expected matches")
	}

	entries := idx.Entries()
	check := func(r MatchResult) {
		t.Helper()
		if r.Ratio < opts.MinRatio {
			t.Errorf("ratio %v below threshold for %q", r.Ratio, r.TargetText)
		}
		if r.GroupSize < 1 || r.GroupSize > opts.MaxGroupSize {
			t.Errorf("group size %d for %q", r.GroupSize, r.TargetText)
		}
		for k := r.SubtitlePosition + 1; k < r.SubtitlePosition+r.GroupSize; k++ {
			if gap := entries[k].Start - entries[k-1].End; gap > opts.MaxGap+gapEpsilon {
				t.Errorf("gap %v inside span for %q", gap, r.TargetText)
			}
		}
	}

	last := -1
	for _, m := range first {
		if m.Position <= last {
			t.Fatalf("positions out of order: %d after %d", m.Position, last)
		}
		if m.Position < 0 || m.Position >= len(segments) {
			t.Fatalf("unknown position %d", m.Position)
		}
		last = m.Position
		if m.Complete != nil {
			check(*m.Complete)
		}
		for _, s := range m.Sentences {
			check(s)
		}
	}

	missing := UnmatchedPositions(segments, first)
	if !reflect.DeepEqual(missing, []int{len(episodeLines) - 1}) {
		t.Fatalf("unmatched = %v", missing)
	}
}

func TestMatchAllCanceled(t *testing.T) {
	segments, idx := syntheticEpisode(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDialogMatcher(idx, DefaultOptions(), nil).MatchAll(ctx, segments)
	if !errors.Is(err, services.ErrCanceled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestMatchAllEmpty(t *testing.T) {
	got, err := NewDialogMatcher(subtitles.BuildIndex(nil), DefaultOptions(), nil).MatchAll(context.Background(), nil)
	if err != nil || got != nil {
		t.Fatalf("got %v, %v", got, err)
	}
}
