package subtitles

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"scriptsync/internal/services"
)

const sampleTrack = "\ufeff1\r\n00:00:10,000 --> 00:00:11,000\r\nI am fully functional\r\n\r\n2\r\n00:00:11.100 --> 00:00:12.500 X1:40 X2:600\r\nand programmed in\r\nmultiple techniques\r\n\r\nbogus block\r\n\r\n3\r\n00:02:00,000 --> 00:02:01,200\r\n<i>Make it so.</i>\r\n"

func TestParseSRT(t *testing.T) {
	cues, err := ParseSRT(strings.NewReader(sampleTrack))
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("got %d cues, want 3", len(cues))
	}
	tests := []struct {
		idx   int
		start float64
		end   float64
		text  string
	}{
		{1, 10.0, 11.0, "I am fully functional"},
		{2, 11.1, 12.5, "and programmed in\nmultiple techniques"},
		{3, 120.0, 121.2, "<i>Make it so.</i>"},
	}
	for i, tt := range tests {
		got := cues[i]
		if got.Index != tt.idx || math.Abs(got.Start-tt.start) > 1e-9 || math.Abs(got.End-tt.end) > 1e-9 || got.Text != tt.text {
			t.Errorf("cue %d = %+v, want %+v", i, got, tt)
		}
	}
}

func TestParseSRTWithoutCuesFails(t *testing.T) {
	for _, input := range []string{"", "   \n\n", "1\nnot a timing line\ntext\n"} {
		if _, err := ParseSRT(strings.NewReader(input)); !errors.Is(err, services.ErrParse) {
			t.Errorf("ParseSRT(%q) error = %v, want ErrParse", input, err)
		}
	}
}

func TestParseSRTFileMissing(t *testing.T) {
	_, err := ParseSRTFile(filepath.Join(t.TempDir(), "missing.srt"))
	if !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := map[float64]string{
		0:        "00:00:00,000",
		-3:       "00:00:00,000",
		1.5:      "00:00:01,500",
		121.2:    "00:02:01,200",
		3723.004: "01:02:03,004",
	}
	for in, want := range tests {
		if got := FormatTimestamp(in); got != want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteSRTRoundTrip(t *testing.T) {
	cues := []Cue{
		{Index: 7, Start: 0, End: 1.25, Text: "- Captain?\n- Yes?"},
		{Index: 9, Start: 1.3, End: 2, Text: "Engage."},
	}
	var buf bytes.Buffer
	if err := WriteSRT(&buf, cues); err != nil {
		t.Fatalf("WriteSRT: %v", err)
	}
	want := "1\n00:00:00,000 --> 00:00:01,250\n- Captain?\n- Yes?\n\n2\n00:00:01,300 --> 00:00:02,000\nEngage.\n"
	if buf.String() != want {
		t.Fatalf("WriteSRT output = %q, want %q", buf.String(), want)
	}

	back, err := ParseSRT(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}
	if len(back) != 2 || back[0].Text != cues[0].Text || back[1].Index != 2 {
		t.Fatalf("round trip = %+v", back)
	}
}

func TestRetime(t *testing.T) {
	cues := []Cue{
		{Index: 4, Start: 9.95, End: 11, Text: "a"},
		{Index: 5, Start: 11.1, End: 12.5, Text: "b"},
	}
	got := Retime(cues, 10)
	if got[0].Start != 0 || math.Abs(got[0].End-1) > 1e-9 || got[0].Index != 1 {
		t.Fatalf("first cue = %+v", got[0])
	}
	if math.Abs(got[1].Start-1.1) > 1e-9 || math.Abs(got[1].End-2.5) > 1e-9 || got[1].Index != 2 {
		t.Fatalf("second cue = %+v", got[1])
	}
}
