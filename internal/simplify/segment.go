package simplify

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segment splits text into sentences. A boundary is a whitespace run that
// follows '.', '!' or '?', unless the characters right before the
// whitespace form an abbreviation: a word character, '.', a word character
// and the terminal mark (as in "e.g."), or an uppercase letter, a
// lowercase letter and '.' (as in "Dr."). Sentences are trimmed and empty
// fragments are dropped.
func Segment(text string) []string {
	var out []string
	start := 0
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			i += size
			continue
		}
		j := i + size
		for j < len(text) {
			r2, s2 := utf8.DecodeRuneInString(text[j:])
			if !unicode.IsSpace(r2) {
				break
			}
			j += s2
		}
		if isSentenceEnd(text[:i]) {
			out = appendSentence(out, text[start:i])
			start = j
		}
		i = j
	}
	return appendSentence(out, text[start:])
}

func appendSentence(out []string, fragment string) []string {
	if s := strings.TrimSpace(fragment); s != "" {
		out = append(out, s)
	}
	return out
}

// isSentenceEnd reports whether a boundary may follow prefix.
func isSentenceEnd(prefix string) bool {
	n := len(prefix)
	if n == 0 {
		return false
	}
	switch prefix[n-1] {
	case '.', '!', '?':
	default:
		return false
	}
	// "e.g." style: \w\.\w followed by the terminal mark
	if n >= 4 && isWordByte(prefix[n-4]) && prefix[n-3] == '.' && isWordByte(prefix[n-2]) {
		return false
	}
	// "Mr." style
	if n >= 3 && isUpperByte(prefix[n-3]) && isLowerByte(prefix[n-2]) && prefix[n-1] == '.' {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return isUpperByte(b) || isLowerByte(b) || (b >= '0' && b <= '9') || b == '_'
}

func isUpperByte(b byte) bool { return b >= 'A' && b <= 'Z' }

func isLowerByte(b byte) bool { return b >= 'a' && b <= 'z' }

// words splits s on whitespace runs.
func words(s string) []string {
	return strings.Fields(s)
}
