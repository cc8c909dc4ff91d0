package simplify

import "testing"

func TestSelect_FiltersRanksAndRestoresOrder(t *testing.T) {
	sentences := []string{
		"Cats sleep.",                                      // score 1
		"Students learn to read.",                          // score 3
		"The sun is bright.",                               // score 1
		"Teachers help students grow every day at school.", // score 7
	}
	level := Level{Key: "test", MaxSentences: 2, MaxWordsPerSentence: 20, ComplexityThreshold: 1}
	got := Select(sentences, level)
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(got))
	}
	if got[0].OriginalIndex != 1 || got[1].OriginalIndex != 3 {
		t.Fatalf("expected original indices [1 3], got [%d %d]", got[0].OriginalIndex, got[1].OriginalIndex)
	}
}

func TestSelect_TiesKeepInputOrder(t *testing.T) {
	sentences := []string{"A one.", "B two.", "C three.", "D four."}
	level := Level{Key: "test", MaxSentences: 2, MaxWordsPerSentence: 20, ComplexityThreshold: 1}
	got := Select(sentences, level)
	if len(got) != 2 || got[0].Text != "A one." || got[1].Text != "B two." {
		t.Fatalf("expected the first two tied sentences, got %+v", got)
	}
}

func TestSelect_AppliesWordAndComplexityLimits(t *testing.T) {
	sentences := []string{
		"one two three four five six seven eight nine ten eleven twelve thirteen.",
		"Alpha, beta, gamma.",
		"Short and sweet.",
	}
	got := Select(sentences, Heavy)
	if len(got) != 1 || got[0].Text != "Short and sweet." {
		t.Fatalf("expected only the short simple sentence, got %+v", got)
	}
}

func TestSelect_FallbackWhenNothingPasses(t *testing.T) {
	sentences := []string{
		"Alpha, beta, gamma.",
		"Delta, epsilon, zeta.",
		"Eta, theta, iota.",
		"Kappa, lambda, mu.",
		"Nu, xi, omicron.",
		"Pi, rho, sigma.",
	}
	got := Select(sentences, Heavy)
	if len(got) != Heavy.MaxSentences {
		t.Fatalf("expected fallback to %d sentences, got %d", Heavy.MaxSentences, len(got))
	}
	for i, s := range got {
		if s.OriginalIndex != i || s.Text != sentences[i] {
			t.Fatalf("fallback entry %d = %+v, want %q", i, s, sentences[i])
		}
	}
}

func TestSelect_Empty(t *testing.T) {
	if got := Select(nil, Light); len(got) != 0 {
		t.Fatalf("expected no sentences, got %d", len(got))
	}
}

func TestSelect_RespectsMaxSentencesForAllLevels(t *testing.T) {
	var sentences []string
	for i := 0; i < 20; i++ {
		sentences = append(sentences, "Plants need water.")
	}
	for _, lv := range Levels() {
		if got := Select(sentences, lv); len(got) != lv.MaxSentences {
			t.Fatalf("%s: got %d sentences, want %d", lv.Key, len(got), lv.MaxSentences)
		}
	}
}
