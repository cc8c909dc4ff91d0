package budget

import (
	"math"
	"strings"
)

// EstimateTokens approximates the token count of s at about four
// characters per token, rounding up.
func EstimateTokens(s string) int {
	if len(s) == 0 {
		return 0
	}
	return int(math.Ceil(float64(len(s)) / 4.0))
}

// ModelContextTokens returns a rough context window for modelName.
// Unknown models get a conservative default.
func ModelContextTokens(modelName string) int {
	name := strings.ToLower(strings.TrimSpace(modelName))
	if v, ok := knownModelMax[name]; ok {
		return v
	}
	switch {
	case strings.HasSuffix(name, "128k"), strings.Contains(name, "-mini"):
		return 128_000
	case strings.HasSuffix(name, "32k"):
		return 32_768
	}
	return 8192
}

// FitsPrompt reports whether a prompt of promptTokens leaves room for
// reservedOutput tokens in the model's window.
func FitsPrompt(modelName string, promptTokens, reservedOutput int) bool {
	if reservedOutput < 0 {
		reservedOutput = 0
	}
	return ModelContextTokens(modelName)-reservedOutput-promptTokens > 0
}

var knownModelMax = map[string]int{
	"gpt-4o":        128_000,
	"gpt-4o-mini":   128_000,
	"gpt-4-turbo":   128_000,
	"gpt-3.5-turbo": 16_384,
	"llama-3":       8_192,
	"llama-3.1":     128_000,
	"gpt-oss-20b":   4_096,
}
