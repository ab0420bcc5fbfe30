package main

import (
	"fmt"
	"strings"
	"time"

	"scriptsync/internal/subtitles"
	"scriptsync/internal/textutil"
)

func formatSeconds(seconds float64) string {
	return subtitles.FormatTimestamp(seconds)
}

func formatRatio(ratio float64) string {
	return fmt.Sprintf("%.3f", ratio)
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value*100)
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func speakerLabel(speaker string) string {
	if speaker == "" {
		return "-"
	}
	return textutil.DisplayName(speaker)
}

func formatPositions(positions []int) string {
	if len(positions) == 0 {
		return "none"
	}
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ", ")
}
