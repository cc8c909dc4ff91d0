package budget

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Input ceilings enforced before any text reaches a pipeline.
const (
	// MinSimplifyChars is the shortest text worth simplifying.
	MinSimplifyChars = 10
	// MaxSimplifyChars bounds the simplifier input.
	MaxSimplifyChars = 5000
	// MaxTranslateChars bounds the translator input.
	MaxTranslateChars = 2000
	// MaxUploadBytes bounds documents handed to extraction.
	MaxUploadBytes = 10 * 1024 * 1024
)

var (
	ErrEmptyText    = errors.New("text is empty")
	ErrTextTooShort = errors.New("text is already very short")
	ErrTextTooLong  = errors.New("text is too long")
)

// CheckSimplifyInput trims text and rejects input that is empty, shorter
// than MinSimplifyChars or longer than MaxSimplifyChars characters.
func CheckSimplifyInput(text string) (string, error) {
	s := strings.TrimSpace(text)
	n := utf8.RuneCountInString(s)
	switch {
	case n == 0:
		return "", ErrEmptyText
	case n < MinSimplifyChars:
		return s, ErrTextTooShort
	case n > MaxSimplifyChars:
		return s, fmt.Errorf("%w: %d characters (max %d)", ErrTextTooLong, n, MaxSimplifyChars)
	}
	return s, nil
}

// CheckTranslateInput trims text and rejects empty input or input over
// MaxTranslateChars characters.
func CheckTranslateInput(text string) (string, error) {
	s := strings.TrimSpace(text)
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return "", ErrEmptyText
	}
	if n > MaxTranslateChars {
		return s, fmt.Errorf("%w: %d characters (max %d)", ErrTextTooLong, n, MaxTranslateChars)
	}
	return s, nil
}

// Truncate returns at most n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
