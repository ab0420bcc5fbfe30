package subtitles

import (
	"regexp"
	"strings"
)

var adPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)opensubtitles`),
	regexp.MustCompile(`(?i)subtitles? by`),
	regexp.MustCompile(`(?i)synced? and corrected`),
	regexp.MustCompile(`(?i)advertise (your|yours?) product`),
	regexp.MustCompile(`(?i)http(s)?://`),
	regexp.MustCompile(`(?i)\bwww\.`),
	regexp.MustCompile(`(?i)\bsubscene\b`),
	regexp.MustCompile(`(?i)\byts\b`),
	regexp.MustCompile(`(?i)\byify\b`),
}

// CleanStats reports the effects of subtitle cleanup.
type CleanStats struct {
	RemovedCues int
	EmptyCues   int
}

// CleanCues drops advertisement and empty cues. Remaining cues keep their
// order and timing.
func CleanCues(cues []Cue) ([]Cue, CleanStats) {
	cleaned := make([]Cue, 0, len(cues))
	var stats CleanStats
	for _, cue := range cues {
		payload := strings.TrimSpace(cue.Text)
		if payload == "" {
			stats.EmptyCues++
			continue
		}
		if isAdvertisement(payload) {
			stats.RemovedCues++
			continue
		}
		cleaned = append(cleaned, cue)
	}
	return cleaned, stats
}

func isAdvertisement(payload string) bool {
	payload = strings.ToLower(strings.Join(strings.Fields(payload), " "))
	for _, pattern := range adPatterns {
		if pattern.MatchString(payload) {
			return true
		}
	}
	return false
}
