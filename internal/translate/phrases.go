package translate

import (
	"context"
	"regexp"
)

// PhraseFooter marks output that only had its educational vocabulary
// replaced.
const PhraseFooter = "\n\n---\n*Partial translation using educational terminology mapping*"

type phrase struct {
	re   *regexp.Regexp
	with string
}

// Entries are applied in order as case-insensitive substring replacements,
// so a short term earlier in the list wins over a longer phrase containing
// it.
var phraseMaps = map[string][]phrase{
	"es": compilePhrases([][2]string{
		{"education", "educación"},
		{"learning", "aprendizaje"},
		{"student", "estudiante"},
		{"teacher", "profesor"},
		{"school", "escuela"},
		{"knowledge", "conocimiento"},
		{"accessibility", "accesibilidad"},
		{"inclusive", "inclusivo"},
		{"quality education", "educación de calidad"},
		{"sustainable development", "desarrollo sostenible"},
		{"educational", "educativo"},
		{"teaching", "enseñanza"},
		{"classroom", "aula"},
		{"curriculum", "plan de estudios"},
		{"assessment", "evaluación"},
	}),
	"fr": compilePhrases([][2]string{
		{"education", "éducation"},
		{"learning", "apprentissage"},
		{"student", "étudiant"},
		{"teacher", "enseignant"},
		{"school", "école"},
		{"knowledge", "connaissance"},
		{"accessibility", "accessibilité"},
		{"inclusive", "inclusif"},
		{"quality education", "éducation de qualité"},
		{"sustainable development", "développement durable"},
		{"educational", "éducatif"},
		{"teaching", "enseignement"},
		{"classroom", "salle de classe"},
		{"curriculum", "programme"},
		{"assessment", "évaluation"},
	}),
	"de": compilePhrases([][2]string{
		{"education", "Bildung"},
		{"learning", "Lernen"},
		{"student", "Student"},
		{"teacher", "Lehrer"},
		{"school", "Schule"},
		{"knowledge", "Wissen"},
		{"accessibility", "Zugänglichkeit"},
		{"inclusive", "inklusiv"},
		{"quality education", "hochwertige Bildung"},
		{"sustainable development", "nachhaltige Entwicklung"},
	}),
}

func compilePhrases(pairs [][2]string) []phrase {
	out := make([]phrase, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, phrase{re: regexp.MustCompile("(?i)" + regexp.QuoteMeta(p[0])), with: p[1]})
	}
	return out
}

// PhraseMap swaps known educational terms for their translation and leaves
// the rest of the text in English.
type PhraseMap struct{}

func (PhraseMap) Name() string { return "phrasemap" }

func (PhraseMap) Translate(_ context.Context, text string, target Language) (string, error) {
	phrases, ok := phraseMaps[target.Code]
	if !ok {
		return "", ErrNotCovered
	}
	out := text
	for _, p := range phrases {
		out = p.re.ReplaceAllLiteralString(out, p.with)
	}
	return out + PhraseFooter, nil
}
