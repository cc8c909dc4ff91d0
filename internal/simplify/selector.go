package simplify

import "sort"

// ScoredSentence carries the per-sentence measurements used for selection.
type ScoredSentence struct {
	Text          string
	OriginalIndex int
	Score         float64
	WordCount     int
	Complexity    float64
}

// Select keeps the highest scoring sentences that fit the level's word and
// complexity limits, returned in reading order. When nothing passes the
// limits the first MaxSentences sentences are returned unfiltered, so a
// non-empty input never yields an empty selection.
func Select(sentences []string, level Level) []ScoredSentence {
	scored := make([]ScoredSentence, len(sentences))
	for i, s := range sentences {
		scored[i] = ScoredSentence{
			Text:          s,
			OriginalIndex: i,
			Score:         Score(s),
			WordCount:     len(words(s)),
			Complexity:    Complexity(s),
		}
	}

	kept := make([]ScoredSentence, 0, len(scored))
	for _, s := range scored {
		if s.WordCount <= level.MaxWordsPerSentence && s.Complexity <= level.ComplexityThreshold {
			kept = append(kept, s)
		}
	}

	if len(kept) == 0 {
		return firstN(scored, level.MaxSentences)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})
	kept = firstN(kept, level.MaxSentences)
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].OriginalIndex < kept[j].OriginalIndex
	})
	return kept
}

func firstN(in []ScoredSentence, n int) []ScoredSentence {
	if n < 0 {
		n = 0
	}
	if len(in) > n {
		return in[:n]
	}
	return in
}
