// Package validate checks that simplified text produced outside the rule
// engine actually meets the limits of its level.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hyperifyio/easyread/internal/simplify"
)

// ErrLevelMismatch is wrapped by LevelFit failures.
var ErrLevelMismatch = errors.New("text does not fit level")

// MaxJargonPer100 is the jargon density above which text is rejected.
const MaxJargonPer100 = 5.0

var acronymRe = regexp.MustCompile(`\b[A-Z]{2,6}\b`)

// Lowercase substrings that mark academic register.
var jargonLexicon = []string{
	"aforementioned", "heretofore", "notwithstanding", "pursuant", "paradigm",
	"methodolog", "epistemolog", "ontolog", "dichotomy", "juxtapos", "multifaceted",
	"synergy", "operationaliz", "hegemon", "quintessential", "conceptualiz",
	"henceforth", "thereof", "wherein", "whereby",
}

// LevelFit reports whether text respects level's sentence budget and
// sentence length, allowing a quarter over the word limit, and is not
// dense with jargon. The heavy-level intro line is ignored.
func LevelFit(text string, level simplify.Level) error {
	body := strings.TrimPrefix(strings.TrimSpace(text), simplify.MainPointsIntro)
	sentences := simplify.Segment(body)
	var issues []string
	if len(sentences) == 0 {
		issues = append(issues, "no sentences")
	}
	if len(sentences) > level.MaxSentences {
		issues = append(issues, fmt.Sprintf("%d sentences (max %d)", len(sentences), level.MaxSentences))
	}
	limit := level.MaxWordsPerSentence + (level.MaxWordsPerSentence+3)/4
	for i, s := range sentences {
		if n := len(strings.Fields(s)); n > limit {
			issues = append(issues, fmt.Sprintf("sentence %d has %d words (max %d)", i+1, n, limit))
		}
	}
	if d := JargonDensity(body); d > MaxJargonPer100 {
		issues = append(issues, fmt.Sprintf("jargon density %.1f per 100 words", d))
	}
	if len(issues) == 0 {
		return nil
	}
	return fmt.Errorf("%w %s: %s", ErrLevelMismatch, level.Key, strings.Join(issues, "; "))
}

// JargonDensity counts uncommon acronyms and academic terms per 100 words.
func JargonDensity(text string) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	hits := 0
	for _, m := range acronymRe.FindAllString(text, -1) {
		switch m {
		case "DNA", "TV", "USA", "UK", "UN", "AI":
			continue
		}
		hits++
	}
	low := strings.ToLower(text)
	for _, j := range jargonLexicon {
		hits += strings.Count(low, j)
	}
	return float64(hits) / float64(words) * 100
}
