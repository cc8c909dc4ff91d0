// Package report turns simplification and translation results into the
// documents handed back to teachers: a Markdown report, optionally rendered
// to HTML or PDF.
package report

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/hyperifyio/easyread/internal/simplify"
)

// FormatSummary wraps simplified text with the level heading and the
// before/after statistics.
func FormatSummary(res simplify.Result) string {
	st := res.Stats
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 %s\n\n", strings.ToUpper(res.Level.Name))
	b.WriteString(res.Text)
	b.WriteString("\n\n---\n📊 SIMPLIFICATION RESULTS:\n\n")
	fmt.Fprintf(&b, "• Word count reduced by %d%% (%d vs %d words)\n", st.WordReduction, st.SimplifiedWords, st.OriginalWords)
	fmt.Fprintf(&b, "• Sentence count reduced by %d%% (%d vs %d sentences)\n", st.SentenceReduction, st.SimplifiedSentences, st.OriginalSentences)
	fmt.Fprintf(&b, "• Readability improved by %d%%\n", st.Improvement)
	fmt.Fprintf(&b, "• Complexity reduced from %d%% to %d%%\n\n", st.OriginalComplexity, st.SimplifiedComplexity)
	fmt.Fprintf(&b, "💡 %s\n\n", res.Level.Example)
	b.WriteString("🎓 This simplified version maintains educational value while being more accessible to diverse learners.")
	return b.String()
}

// FormatWithOriginal shows the original and simplified text one after the
// other, followed by a short transformation summary.
func FormatWithOriginal(original string, res simplify.Result) string {
	st := res.Stats
	var b strings.Builder
	fmt.Fprintf(&b, "📖 ORIGINAL TEXT (%d words, %d sentences):\n%s\n\n", st.OriginalWords, st.OriginalSentences, original)
	fmt.Fprintf(&b, "🎯 SIMPLIFIED VERSION (%d words, %d sentences):\n%s\n\n", st.SimplifiedWords, st.SimplifiedSentences, res.Text)
	b.WriteString("---\n📊 TRANSFORMATION SUMMARY:\n\n")
	fmt.Fprintf(&b, "• Word reduction: %d%%\n", st.WordReduction)
	fmt.Fprintf(&b, "• Sentence reduction: %d%%\n", st.SentenceReduction)
	fmt.Fprintf(&b, "• Readability improvement: %d%%\n", st.Improvement)
	fmt.Fprintf(&b, "• Complexity reduction: %d%% → %d%%\n\n", st.OriginalComplexity, st.SimplifiedComplexity)
	b.WriteString("💡 Educational Impact: This simplified version makes the content more accessible while preserving key learning concepts for diverse student needs.")
	return b.String()
}

// ExampleNotes returns the notes AddExample picks from for level.
func ExampleNotes(level simplify.Level) []string {
	return []string{
		"\n\n💡 Example: " + level.Example,
		"\n\n📚 Tip: This simplified version maintains key educational concepts while being easier to understand.",
		"\n\n🎓 Educational Note: Simplified text helps diverse learners grasp complex concepts more easily.",
	}
}

// AddExample appends one educational note chosen by rng. Empty text is
// returned unchanged.
func AddExample(text string, level simplify.Level, rng *rand.Rand) string {
	if text == "" {
		return text
	}
	notes := ExampleNotes(level)
	return text + notes[rng.Intn(len(notes))]
}
