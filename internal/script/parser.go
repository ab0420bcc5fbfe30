package script

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"scriptsync/internal/config"
	"scriptsync/internal/services"
)

var (
	annotationPattern      = regexp.MustCompile(`[\[\(].*?[\]\)]`)
	sceneLinePattern       = regexp.MustCompile(`^\[([^\]]+)\]$`)
	speakerLinePattern     = regexp.MustCompile(`^([A-Z][A-Z0-9'\-/. ]*?)\s*:\s*(.*)$`)
	embeddedSpeakerPattern = regexp.MustCompile(`\b([A-Z][A-Z'\-]+)\s*:`)
)

// Options controls speaker attribution.
type Options struct {
	// LogPhrases are lowercase line openings credited to LogSpeaker.
	LogPhrases []string
	LogSpeaker string
	// Aliases maps uppercase alternate names to a canonical speaker.
	Aliases map[string]string
}

// OptionsFromConfig builds parser options from the [script] section.
func OptionsFromConfig(cfg config.Script) Options {
	return Options{
		LogPhrases: cfg.LogPhrases,
		LogSpeaker: cfg.LogSpeaker,
		Aliases:    cfg.SpeakerAliases,
	}
}

// Parser converts raw script text into dialogue segments.
type Parser struct {
	opts Options
}

// NewParser constructs a parser. Phrases are matched case-insensitively and
// alias keys are uppercased.
func NewParser(opts Options) *Parser {
	phrases := make([]string, 0, len(opts.LogPhrases))
	for _, phrase := range opts.LogPhrases {
		if trimmed := strings.ToLower(strings.TrimSpace(phrase)); trimmed != "" {
			phrases = append(phrases, trimmed)
		}
	}
	aliases := make(map[string]string, len(opts.Aliases))
	for alias, canonical := range opts.Aliases {
		aliases[strings.ToUpper(strings.TrimSpace(alias))] = strings.ToUpper(strings.TrimSpace(canonical))
	}
	return &Parser{opts: Options{
		LogPhrases: phrases,
		LogSpeaker: strings.ToUpper(strings.TrimSpace(opts.LogSpeaker)),
		Aliases:    aliases,
	}}
}

// ParseFile reads and parses the script at path.
func (p *Parser) ParseFile(path string) ([]DialogSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "script", "read", fmt.Sprintf("read %s", path), err)
	}
	return p.Parse(string(data))
}

// Parse returns the dialogue segments of raw in script order. Text that is
// not valid UTF-8 is a parse error. A script without speaker markers yields
// no segments and no error.
func (p *Parser) Parse(raw string) ([]DialogSegment, error) {
	if !utf8.ValidString(raw) {
		return nil, services.Wrap(services.ErrParse, "script", "decode", "script is not valid UTF-8", nil)
	}
	raw = strings.TrimPrefix(raw, "\ufeff")

	b := &builder{parser: p}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := sceneLinePattern.FindStringSubmatch(line); m != nil {
			b.flush()
			b.speaker = ""
			b.scene = strings.TrimSpace(m[1])
			continue
		}
		line = strings.TrimSpace(annotationPattern.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		if p.isLogEntry(line) {
			b.start(p.opts.LogSpeaker, line)
			continue
		}
		if m := speakerLinePattern.FindStringSubmatch(line); m != nil {
			b.start(m[1], m[2])
			continue
		}
		b.appendLine(line)
	}
	b.flush()
	return b.segments, nil
}

// CanonicalSpeaker uppercases name and resolves configured aliases.
func (p *Parser) CanonicalSpeaker(name string) string {
	name = strings.ToUpper(strings.Join(strings.Fields(name), " "))
	if canonical, ok := p.opts.Aliases[name]; ok && canonical != "" {
		return canonical
	}
	return name
}

func (p *Parser) isLogEntry(line string) bool {
	if p.opts.LogSpeaker == "" {
		return false
	}
	lowered := strings.ToLower(line)
	for _, phrase := range p.opts.LogPhrases {
		if strings.HasPrefix(lowered, phrase) {
			return true
		}
	}
	return false
}

type builder struct {
	parser   *Parser
	segments []DialogSegment
	scene    string
	speaker  string
	lines    []string
}

func (b *builder) start(speaker, text string) {
	b.flush()
	b.speaker = b.parser.CanonicalSpeaker(speaker)
	b.lines = b.lines[:0]
	if text = strings.TrimSpace(text); text != "" {
		b.lines = append(b.lines, text)
	}
}

func (b *builder) appendLine(line string) {
	if b.speaker == "" {
		return
	}
	b.lines = append(b.lines, line)
}

// flush closes the current segment, splitting it wherever another speaker
// marker appears mid-paragraph.
func (b *builder) flush() {
	defer func() { b.lines = b.lines[:0] }()
	if b.speaker == "" || len(b.lines) == 0 {
		return
	}
	text := strings.Join(b.lines, " ")

	speaker := b.speaker
	for {
		loc := embeddedSpeakerPattern.FindStringSubmatchIndex(text)
		if loc == nil {
			break
		}
		b.emit(speaker, text[:loc[0]])
		speaker = b.parser.CanonicalSpeaker(text[loc[2]:loc[3]])
		text = text[loc[1]:]
	}
	b.emit(speaker, text)
}

func (b *builder) emit(speaker, text string) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return
	}
	b.segments = append(b.segments, DialogSegment{
		Speaker:   speaker,
		Text:      text,
		SceneInfo: b.scene,
		Position:  len(b.segments),
	})
}
