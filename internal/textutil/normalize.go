package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

var (
	markupPattern        = regexp.MustCompile(`<[^>]+>`)
	parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)
	bracketPattern       = regexp.MustCompile(`\[[^\]]*\]`)
	shortPunctPattern    = regexp.MustCompile(`[,;]`)
	punctPattern         = regexp.MustCompile(`[^\p{L}\p{N}_\s']`)
)

// shortPhraseMaxWords is the word count at or below which only commas and
// semicolons are stripped.
const shortPhraseMaxWords = 3

var quoteReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", "\"",
	"”", "\"",
	"…", "...",
)

// Normalize canonicalizes raw dialogue for comparison: markup, parenthetical
// stage directions, and bracketed annotations are removed, text is
// lowercased, the digit 3 is spelled out, and punctuation is stripped
// depending on phrase length. Whitespace is collapsed.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	text := fold(raw)
	text = markupPattern.ReplaceAllString(text, "")
	text = parentheticalPattern.ReplaceAllString(text, "")
	text = bracketPattern.ReplaceAllString(text, "")
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "3", "three")

	if len(strings.Fields(text)) <= shortPhraseMaxWords {
		text = shortPunctPattern.ReplaceAllString(text, "")
	} else {
		text = punctPattern.ReplaceAllString(text, "")
	}
	return CollapseSpace(text)
}

// CollapseSpace trims s and replaces every run of whitespace with one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// WordCount returns the number of whitespace separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// fold maps full-width forms and typographic quotes to their ASCII
// equivalents and reduces all whitespace to single spaces.
func fold(s string) string {
	if folded, _, err := transform.String(width.Fold, s); err == nil {
		s = folded
	}
	return CollapseSpace(quoteReplacer.Replace(s))
}

// StripAnnotations removes markup tags, parentheticals, and bracketed
// annotations without changing case or punctuation.
func StripAnnotations(s string) string {
	s = markupPattern.ReplaceAllString(s, "")
	s = parentheticalPattern.ReplaceAllString(s, "")
	return bracketPattern.ReplaceAllString(s, "")
}

// StripMarkup removes markup tags only.
func StripMarkup(s string) string {
	return markupPattern.ReplaceAllString(s, "")
}

var titleCaser = cases.Title(language.Und)

// DisplayName renders a canonical speaker name for humans ("JEAN-LUC" becomes
// "Jean-Luc").
func DisplayName(speaker string) string {
	speaker = strings.TrimSpace(speaker)
	if speaker == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(speaker))
}
