package simplify

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MainPointsIntro prefixes heavy simplifications with more than one sentence.
const MainPointsIntro = "Here are the main points:\n\n"

// Reconstruct joins rewritten sentences into flowing text: ". " between
// sentences, each sentence starting uppercase and a terminal mark at the
// end.
func Reconstruct(sentences []string, level Level) string {
	if len(sentences) == 0 {
		return ""
	}
	parts := make([]string, len(sentences))
	for i, s := range sentences {
		parts[i] = capitalizeFirst(s)
	}
	text := strings.Join(parts, ". ")
	if text != "" && !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "!") && !strings.HasSuffix(text, "?") {
		text += "."
	}
	if level.Key == Heavy.Key && len(sentences) > 1 {
		text = MainPointsIntro + text
	}
	return text
}

// capitalizeFirst upper-cases the first character only. A full Unicode
// mapping is used so that e.g. "ß" becomes "SS".
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	upper := cases.Upper(language.Und)
	return upper.String(s[:size]) + s[size:]
}
