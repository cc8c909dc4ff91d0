package simplify

import (
	"errors"
	"fmt"
	"strings"
)

// Level is a named simplification preset. The three presets are fixed and
// shared read-only across callers.
type Level struct {
	Key                 string
	Name                string
	Description         string
	MaxSentences        int
	MaxWordsPerSentence int
	// ComplexityThreshold is the highest per-sentence complexity in [0,1]
	// a sentence may have and still be kept.
	ComplexityThreshold float64
	// Example is a short before/after phrase used in reports.
	Example string
}

// ErrUnknownLevel is returned when a level key is not one of light, medium
// or heavy.
var ErrUnknownLevel = errors.New("unknown simplification level")

var (
	Light = Level{
		Key:                 "light",
		Name:                "Light Simplification",
		Description:         "Keeps most details while improving readability",
		MaxSentences:        8,
		MaxWordsPerSentence: 20,
		ComplexityThreshold: 0.7,
		Example:             `Like turning "The meteorological precipitation is substantial" into "It's raining heavily"`,
	}
	Medium = Level{
		Key:                 "medium",
		Name:                "Medium Simplification",
		Description:         "Balanced approach for general understanding",
		MaxSentences:        6,
		MaxWordsPerSentence: 15,
		ComplexityThreshold: 0.5,
		Example:             `Like changing "Utilize the apparatus" to "Use the equipment"`,
	}
	Heavy = Level{
		Key:                 "heavy",
		Name:                "Heavy Simplification",
		Description:         "Maximum simplicity for easy reading",
		MaxSentences:        4,
		MaxWordsPerSentence: 12,
		ComplexityThreshold: 0.3,
		Example:             `Like simplifying "The cognitive processes involved in comprehension" to "How we understand things"`,
	}
)

// Levels returns the presets from least to most aggressive.
func Levels() []Level {
	return []Level{Light, Medium, Heavy}
}

// LevelByName looks up a preset by key. Matching ignores case and
// surrounding whitespace.
func LevelByName(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Light.Key:
		return Light, nil
	case Medium.Key:
		return Medium, nil
	case Heavy.Key:
		return Heavy, nil
	}
	return Level{}, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}
