// Package episode identifies episodes by their SxxEyy code and locates the
// script, subtitle, and video files that belong to one.
package episode

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"scriptsync/internal/services"
)

var codePattern = regexp.MustCompile(`(?i)^s(\d{1,3})e(\d{1,4})`)

// VideoExtensions are the container formats batch discovery picks up.
var VideoExtensions = []string{".mkv", ".mp4", ".avi"}

// Code is a season/episode pair.
type Code struct {
	Season  int `json:"season"`
	Episode int `json:"episode"`
}

// String renders the code as S03E07.
func (c Code) String() string {
	return fmt.Sprintf("S%02dE%02d", c.Season, c.Episode)
}

// ParseCode reads the SxxEyy prefix of value (a code, a file name, or a
// path). Anything after the code is ignored.
func ParseCode(value string) (Code, error) {
	base := filepath.Base(strings.TrimSpace(value))
	m := codePattern.FindStringSubmatch(base)
	if m == nil {
		return Code{}, services.Wrap(services.ErrValidation, "episode", "parse code", fmt.Sprintf("no SxxEyy code in %q", value), nil)
	}
	season, _ := strconv.Atoi(m[1])
	number, _ := strconv.Atoi(m[2])
	return Code{Season: season, Episode: number}, nil
}

// Files are the inputs for one episode.
type Files struct {
	Code      Code   `json:"code"`
	Stem      string `json:"stem"`
	Video     string `json:"video,omitempty"`
	Script    string `json:"script"`
	Subtitles string `json:"subtitles"`
}

// Resolve maps a video file or a bare episode code to its script
// (<stem>.txt) and subtitle (<stem>.srt) files. When the stem carries more
// than the code ("S01E01 Encounter at Farpoint"), files named by the bare
// code are accepted as a fallback.
func Resolve(videoOrCode, scriptDir, subtitleDir string) (Files, error) {
	code, err := ParseCode(videoOrCode)
	if err != nil {
		return Files{}, err
	}
	files := Files{Code: code}

	base := filepath.Base(videoOrCode)
	if ext := filepath.Ext(base); isVideo(ext) {
		files.Video = videoOrCode
		base = strings.TrimSuffix(base, ext)
	}
	files.Stem = base

	files.Script, err = findInput(scriptDir, []string{base, code.String()}, ".txt")
	if err != nil {
		return files, err
	}
	files.Subtitles, err = findInput(subtitleDir, []string{base, code.String()}, ".srt")
	if err != nil {
		return files, err
	}
	return files, nil
}

func findInput(dir string, stems []string, ext string) (string, error) {
	tried := make([]string, 0, len(stems))
	for _, stem := range stems {
		candidate := filepath.Join(dir, stem+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		tried = append(tried, candidate)
	}
	return "", services.Wrap(services.ErrNotFound, "episode", "resolve", fmt.Sprintf("no %s file (tried %s)", ext, strings.Join(tried, ", ")), nil)
}

// Discover returns the video files under path sorted by name. A file path is
// returned as is when it has a video extension.
func Discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "episode", "discover", path, err)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		if !isVideo(filepath.Ext(path)) {
			return nil, services.Wrap(services.ErrValidation, "episode", "discover", fmt.Sprintf("%s is not a video file", path), nil)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", path, err)
	}
	var videos []string
	for _, entry := range entries {
		if entry.IsDir() || !isVideo(filepath.Ext(entry.Name())) {
			continue
		}
		videos = append(videos, filepath.Join(path, entry.Name()))
	}
	sort.Strings(videos)
	return videos, nil
}

func isVideo(ext string) bool {
	ext = strings.ToLower(ext)
	for _, candidate := range VideoExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
