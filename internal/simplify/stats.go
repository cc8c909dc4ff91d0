package simplify

import "math"

// Stats summarises how much a simplification shortened and eased a text.
// Reductions and complexities are whole percents.
type Stats struct {
	OriginalWords        int `json:"originalWords"`
	SimplifiedWords      int `json:"simplifiedWords"`
	OriginalSentences    int `json:"originalSentences"`
	SimplifiedSentences  int `json:"simplifiedSentences"`
	WordReduction        int `json:"wordReduction"`
	SentenceReduction    int `json:"sentenceReduction"`
	Improvement          int `json:"improvement"`
	OriginalComplexity   int `json:"originalComplexity"`
	SimplifiedComplexity int `json:"simplifiedComplexity"`
}

// ComputeStats compares original and simplified text. Zero denominators
// count as one so the result never holds NaN or infinities.
func ComputeStats(original, simplified string) Stats {
	st := Stats{
		OriginalWords:       len(words(original)),
		SimplifiedWords:     len(words(simplified)),
		OriginalSentences:   len(Segment(original)),
		SimplifiedSentences: len(Segment(simplified)),
	}
	st.WordReduction = roundHalfUp((1 - float64(st.SimplifiedWords)/nonZero(st.OriginalWords)) * 100)
	st.SentenceReduction = roundHalfUp((1 - float64(st.SimplifiedSentences)/nonZero(st.OriginalSentences)) * 100)

	oc := OverallComplexity(original)
	sc := OverallComplexity(simplified)
	if oc > 0 {
		if imp := roundHalfUp((oc - sc) / oc * 100); imp > 0 {
			st.Improvement = imp
		}
	}
	st.OriginalComplexity = roundHalfUp(oc * 100)
	st.SimplifiedComplexity = roundHalfUp(sc * 100)
	return st
}

// OverallComplexity is the mean sentence complexity of text, 0 when it has
// no sentences.
func OverallComplexity(text string) float64 {
	sentences := Segment(text)
	if len(sentences) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range sentences {
		total += Complexity(s)
	}
	return total / float64(len(sentences))
}

func nonZero(n int) float64 {
	if n == 0 {
		return 1
	}
	return float64(n)
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
