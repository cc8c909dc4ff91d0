// Package simplify implements rule-based text simplification: sentence
// segmentation, scoring, selection, rewriting and reconstruction, plus
// before/after statistics. Everything here is a pure function of its
// inputs and safe for concurrent use.
package simplify

import "context"

// Unsimplifiable is returned as the text when rewriting removed everything.
const Unsimplifiable = "Unable to simplify this text while preserving educational value."

// Result is the output of one simplification.
type Result struct {
	Text  string `json:"simplifiedText"`
	Level Level  `json:"-"`
	Stats Stats  `json:"stats"`
	// Engine names the simplifier that produced Text.
	Engine string `json:"engine"`
}

// Engine simplifies text at a level. Implementations that call remote
// models honour ctx; the rule engine ignores it.
type Engine interface {
	Name() string
	Simplify(ctx context.Context, text string, level Level) (Result, error)
}

// Rules is the deterministic rule-based Engine.
type Rules struct{}

func (Rules) Name() string { return "rules" }

func (Rules) Simplify(_ context.Context, text string, level Level) (Result, error) {
	return Apply(text, level), nil
}

// Simplify runs the rule pipeline for the level named by levelName.
func Simplify(text, levelName string) (Result, error) {
	level, err := LevelByName(levelName)
	if err != nil {
		return Result{}, err
	}
	return Apply(text, level), nil
}

// Apply runs the rule pipeline at level. The result text is never empty.
func Apply(text string, level Level) Result {
	selected := Select(Segment(text), level)
	rewritten := make([]string, 0, len(selected))
	for _, s := range selected {
		rewritten = append(rewritten, Rewrite(s.Text, level))
	}
	out := Reconstruct(rewritten, level)
	if out == "" {
		out = Unsimplifiable
	}
	return Result{
		Text:   out,
		Level:  level,
		Stats:  ComputeStats(text, out),
		Engine: Rules{}.Name(),
	}
}
