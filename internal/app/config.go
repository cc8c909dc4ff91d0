package app

import "time"

// Modes selected with -mode.
const (
	ModeSimplify  = "simplify"
	ModeTranslate = "translate"
	ModeExtract   = "extract"
)

// Config holds runtime configuration for the application.
type Config struct {
	InputPath      string
	OutputPath     string
	OutputPDFPath  string
	OutputHTMLPath string
	// OutputJSONPath, when set, receives a machine-readable run manifest.
	OutputJSONPath string

	Mode           string
	Level          string
	TargetLanguage string
	ShowOriginal   bool
	AddExamples    bool
	// Seed drives example selection; 0 picks a time-based seed.
	Seed int64

	// LLM
	LLMBaseURL   string
	LLMModel     string
	LLMAPIKey    string
	LLMCacheOnly bool
	SystemPrompt string

	// Translation
	TranslateURL string
	TranslateKey string

	// IgnoreRobots skips the robots.txt check for URL input.
	IgnoreRobots bool

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheMaxEntries  int
	CacheClear       bool
	CacheStrictPerms bool

	Verbose bool
}
