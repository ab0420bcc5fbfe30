package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scriptsync/internal/config"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Episode is a small script/subtitle pair used across workflow and CLI tests.
type Episode struct {
	Stem      string
	Script    string
	Subtitles string
}

// SampleEpisode returns an episode whose script lines all match its
// subtitles except the final one.
func SampleEpisode(stem string) Episode {
	script := strings.Join([]string{
		"[Bridge]",
		"",
		"PICARD: Ensign, set a course for the Neutral Zone.",
		"",
		"RIKER: Aye, sir. Course laid in.",
		"",
		"DATA: Captain, sensors detect a vessel approaching at warp five.",
		"",
		"PICARD: On screen. Hail them.",
		"",
		"WORF: Nothing like this was ever heard aboard.",
		"",
	}, "\n")
	srt := strings.Join([]string{
		"1",
		"00:00:01,000 --> 00:00:03,000",
		"Ensign, set a course",
		"for the Neutral Zone.",
		"",
		"2",
		"00:00:04,000 --> 00:00:05,500",
		"Aye, sir. Course laid in.",
		"",
		"3",
		"00:00:07,000 --> 00:00:09,000",
		"Captain, sensors detect a vessel",
		"",
		"4",
		"00:00:09,200 --> 00:00:10,500",
		"approaching at warp five.",
		"",
		"5",
		"00:00:12,000 --> 00:00:13,000",
		"On screen.",
		"",
		"6",
		"00:00:13,100 --> 00:00:14,000",
		"Hail them.",
		"",
	}, "\n")
	return Episode{Stem: stem, Script: script, Subtitles: srt}
}

// WriteEpisode places an episode's script and subtitles into the configured
// directories and returns the path of an empty video file in the video
// directory.
func WriteEpisode(t testing.TB, cfg *config.Config, ep Episode) string {
	t.Helper()

	WriteFile(t, filepath.Join(cfg.Paths.ScriptDir, ep.Stem+".txt"), ep.Script)
	WriteFile(t, filepath.Join(cfg.Paths.SubtitleDir, ep.Stem+".srt"), ep.Subtitles)
	video := filepath.Join(cfg.Paths.VideoDir, ep.Stem+".mkv")
	WriteFile(t, video, "")
	return video
}
