package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	speakerPrefixPattern = regexp.MustCompile(`^[A-Z][A-Z0-9'\-/. ]*:\s*`)
	closingQuotes        = "\"')’”"
)

var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "lt": {}, "cmdr": {},
	"capt": {}, "st": {}, "jr": {}, "sr": {}, "vs": {},
}

// SplitSentences breaks dialogue into sentences. Annotations and a leading
// "NAME:" marker are removed first. A boundary is a run of '.', '!' or '?'
// (plus closing quotes) followed by whitespace and a character that is not
// lowercase. Ellipses and common title abbreviations do not end a sentence.
func SplitSentences(text string) []string {
	text = CollapseSpace(StripAnnotations(fold(text)))
	text = speakerPrefixPattern.ReplaceAllString(text, "")
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	i := 0
	for i < len(text) {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			i++
			continue
		}
		runStart := i
		dots := 0
		for i < len(text) && strings.IndexByte(".!?", text[i]) >= 0 {
			if text[i] == '.' {
				dots++
			}
			i++
		}
		runEnd := i
		for i < len(text) && strings.ContainsRune(closingQuotes, rune(text[i])) {
			i++
		}
		if i >= len(text) {
			break
		}
		if text[i] != ' ' {
			continue
		}
		next, _ := utf8.DecodeRuneInString(text[i+1:])
		if unicode.IsLower(next) {
			continue
		}
		if dots >= 3 && runEnd-runStart == dots {
			continue
		}
		if dots == 1 && runEnd-runStart == 1 && isAbbreviation(text[start:runStart]) {
			continue
		}
		if sentence := strings.TrimSpace(text[start:i]); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func isAbbreviation(prefix string) bool {
	idx := strings.LastIndexByte(prefix, ' ')
	word := strings.ToLower(prefix[idx+1:])
	_, ok := abbreviations[word]
	return ok
}
