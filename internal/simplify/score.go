package simplify

import (
	"strings"
	"unicode/utf8"
)

// educationalKeywords bias selection toward pedagogically relevant content.
var educationalKeywords = []string{
	"education", "learn", "teach", "student", "teacher", "school",
	"knowledge", "understand", "important", "key", "concept", "study",
	"research", "development", "skill", "ability", "critical", "analysis",
}

var definitionMarkers = []string{"is defined as", "means that", "refers to"}

// Score rates how worth keeping a sentence is. Keywords are matched as
// case-insensitive substrings, once per keyword.
func Score(sentence string) float64 {
	score := 1.0

	n := len(words(sentence))
	if n >= 8 && n <= 25 {
		score += 2
	}
	if n > 35 {
		score--
	}

	lower := strings.ToLower(sentence)
	for _, kw := range educationalKeywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}

	if strings.Contains(sentence, "?") {
		score++
	}

	for _, m := range definitionMarkers {
		if strings.Contains(lower, m) {
			score += 2
			break
		}
	}
	return score
}

// Complexity estimates reading difficulty in [0,1] from long-word density,
// clause count and technical-term density.
func Complexity(sentence string) float64 {
	ws := words(sentence)
	if len(ws) == 0 {
		return 0
	}
	total := float64(len(ws))

	long, technical := 0, 0
	for _, w := range ws {
		n := utf8.RuneCountInString(w)
		if n > 8 {
			long++
		}
		if n > 10 || hasUpperRun(w) {
			technical++
		}
	}

	c := float64(long) / total * 0.5
	c += float64(strings.Count(sentence, ",")+strings.Count(sentence, ";")+strings.Count(sentence, ":")) * 0.2
	c += float64(technical) / total * 0.3
	if c > 1 {
		return 1
	}
	return c
}

// hasUpperRun reports whether w has two consecutive ASCII uppercase letters.
func hasUpperRun(w string) bool {
	for i := 1; i < len(w); i++ {
		if isUpperByte(w[i-1]) && isUpperByte(w[i]) {
			return true
		}
	}
	return false
}
