package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"scriptsync/internal/services"
)

// Cue is one timed SRT block. Times are elapsed seconds.
type Cue struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// ParseSRTFile reads and decodes the SRT file at path.
func ParseSRTFile(path string) ([]Cue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "subtitles", "open", fmt.Sprintf("open %s", path), err)
	}
	defer file.Close()
	return ParseSRT(file)
}

// ParseSRT decodes SRT cues from r. Blocks without a valid timing line are
// skipped. A track with no usable cues is a parse error.
func ParseSRT(r io.Reader) ([]Cue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "subtitles", "read", "read subtitle track", err)
	}
	content := strings.TrimPrefix(string(data), "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var cues []Cue
	var block []string
	flush := func() {
		if cue, ok := parseBlock(block); ok {
			cues = append(cues, cue)
		}
		block = block[:0]
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrParse, "subtitles", "scan", "scan subtitle track", err)
	}
	flush()

	if len(cues) == 0 {
		return nil, services.Wrap(services.ErrParse, "subtitles", "decode", "subtitle track contains no cues", nil)
	}
	return cues, nil
}

func parseBlock(lines []string) (Cue, bool) {
	if len(lines) == 0 {
		return Cue{}, false
	}
	timing := 0
	index := 0
	if !strings.Contains(lines[0], "-->") {
		if len(lines) < 2 {
			return Cue{}, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			return Cue{}, false
		}
		index = n
		timing = 1
	}
	start, end, ok := parseTimingLine(lines[timing])
	if !ok {
		return Cue{}, false
	}
	text := make([]string, 0, len(lines)-timing-1)
	for _, line := range lines[timing+1:] {
		text = append(text, strings.TrimSpace(line))
	}
	return Cue{Index: index, Start: start, End: end, Text: strings.Join(text, "\n")}, true
}

func parseTimingLine(line string) (float64, float64, bool) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, err := parseTimestamp(parts[0])
	if err != nil {
		return 0, 0, false
	}
	// Positioning hints ("X1:...") may follow the end timestamp.
	endFields := strings.Fields(parts[1])
	if len(endFields) == 0 {
		return 0, 0, false
	}
	end, err := parseTimestamp(endFields[0])
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func parseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// FormatTimestamp renders seconds as an SRT timestamp (HH:MM:SS,mmm).
// Negative values render as zero.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	msTotal := int(seconds*1000 + 0.5)
	hours := msTotal / 3_600_000
	msTotal %= 3_600_000
	minutes := msTotal / 60_000
	msTotal %= 60_000
	secs := msTotal / 1_000
	millis := msTotal % 1_000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// WriteSRT encodes cues to w, numbering them from 1 in slice order.
func WriteSRT(w io.Writer, cues []Cue) error {
	bw := bufio.NewWriter(w)
	for i, cue := range cues {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n", i+1, FormatTimestamp(cue.Start), FormatTimestamp(cue.End), cue.Text); err != nil {
			return err
		}
	}
	return bw.Flush()
}
