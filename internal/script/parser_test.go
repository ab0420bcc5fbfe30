package script

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"scriptsync/internal/config"
	"scriptsync/internal/services"
)

func newTestParser() *Parser {
	return NewParser(OptionsFromConfig(config.Default().Script))
}

func TestParseSpeakersAndContinuations(t *testing.T) {
	raw := `[Bridge]
RIKER: Shields are holding.
(The ship shakes)
We cannot take another hit.
ETHAN/JEAN-LUC: Make it so.

[Ready room]
Jean-Luc: Come.
DATA [OC]: Captain, we are being hailed.
`
	got, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []DialogSegment{
		{Speaker: "RIKER", Text: "Shields are holding. We cannot take another hit.", SceneInfo: "Bridge", Position: 0},
		{Speaker: "ETHAN", Text: "Make it so.", SceneInfo: "Bridge", Position: 1},
		{Speaker: "DATA", Text: "Captain, we are being hailed.", SceneInfo: "Ready room", Position: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segments = %#v\nwant %#v", got, want)
	}
}

func TestParseLogEntries(t *testing.T) {
	raw := "Captain's log, stardate 41153.7. Our destination is Farpoint.\nWORF: Sir."
	got, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d segments, want 2", len(got))
	}
	if got[0].Speaker != "PICARD" || got[0].Text != "Captain's log, stardate 41153.7. Our destination is Farpoint." {
		t.Fatalf("log segment = %#v", got[0])
	}
	if got[1].Speaker != "WORF" || got[1].Position != 1 {
		t.Fatalf("second segment = %#v", got[1])
	}
}

func TestParseSplitsEmbeddedSpeakers(t *testing.T) {
	raw := "TROI: I sense anger.\nRIKER: Understood. WORF: Ready, sir.\nDATA: Aye."
	got, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var speakers []string
	for i, seg := range got {
		if seg.Position != i {
			t.Fatalf("segment %d has position %d", i, seg.Position)
		}
		speakers = append(speakers, seg.Speaker)
	}
	want := []string{"TROI", "RIKER", "WORF", "DATA"}
	if !reflect.DeepEqual(speakers, want) {
		t.Fatalf("speakers = %v, want %v", speakers, want)
	}
	if got[1].Text != "Understood." || got[2].Text != "Ready, sir." {
		t.Fatalf("split text = %q / %q", got[1].Text, got[2].Text)
	}
}

func TestParseWithoutSpeakers(t *testing.T) {
	got, err := newTestParser().Parse("Just some prose.\nNothing to see here.")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no segments, got %#v", got)
	}
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	_, err := newTestParser().Parse("RIKER: \xff\xfe")
	if !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "S01E01.txt")
	if err := os.WriteFile(path, []byte("\ufeffPICARD: Engage.\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := newTestParser().ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(got) != 1 || got[0].Text != "Engage." {
		t.Fatalf("segments = %#v", got)
	}

	if _, err := newTestParser().ParseFile(filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, services.ErrParse) {
		t.Fatalf("missing file error = %v", err)
	}
}

func TestCanonicalSpeaker(t *testing.T) {
	p := NewParser(Options{Aliases: map[string]string{"jean-luc": "ethan"}})
	tests := map[string]string{
		"Jean-Luc":   "ETHAN",
		"riker":      "RIKER",
		" MR.  DATA": "MR. DATA",
	}
	for in, want := range tests {
		if got := p.CanonicalSpeaker(in); got != want {
			t.Errorf("CanonicalSpeaker(%q) = %q, want %q", in, got, want)
		}
	}
}
