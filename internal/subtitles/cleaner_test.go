package subtitles

import "testing"

func TestCleanCuesRemovesAdvertisements(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: 1, End: 3, Text: "www.OpenSubtitles.org"},
		{Index: 2, Start: 4, End: 6, Text: "Hello there!"},
		{Index: 3, Start: 7, End: 9, Text: "Subtitle by\nAwesomeSubs"},
		{Index: 4, Start: 10, End: 11, Text: "  "},
		{Index: 5, Start: 12, End: 13, Text: "Visit https://example.com"},
	}
	cleaned, stats := CleanCues(cues)
	if stats.RemovedCues != 3 || stats.EmptyCues != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if len(cleaned) != 1 || cleaned[0].Text != "Hello there!" {
		t.Fatalf("cleaned = %+v", cleaned)
	}
}
