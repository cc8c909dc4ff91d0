package translate

import "strings"

var commonWords = []struct {
	code  string
	words []string
}{
	{"en", []string{"the", "and", "is", "in", "to", "of", "a", "that", "it", "for"}},
	{"es", []string{"el", "la", "de", "que", "y", "en", "un", "es", "se", "no"}},
	{"fr", []string{"le", "la", "de", "et", "à", "est", "un", "dans", "que", "pour"}},
	{"de", []string{"der", "die", "das", "und", "in", "den", "von", "zu", "ist", "sich"}},
}

// DetectLanguage guesses the language of text from common function words.
// It returns "en" when nothing matches; ties go to the earlier language.
func DetectLanguage(text string) string {
	lower := strings.ToLower(text)
	best, bestCode := 0, "en"
	for _, lang := range commonWords {
		n := 0
		for _, w := range lang.words {
			if strings.Contains(lower, " "+w+" ") || strings.HasPrefix(lower, w+" ") || strings.HasSuffix(lower, " "+w) {
				n++
			}
		}
		if n > best {
			best, bestCode = n, lang.code
		}
	}
	return bestCode
}
