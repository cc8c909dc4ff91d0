package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/easyread/internal/simplify"
	"github.com/hyperifyio/easyread/internal/translate"
)

// Defaults applied by the CLI flags. ApplyFileConfig treats a field still
// holding its default as unset.
const (
	DefaultInput    = "lesson.txt"
	DefaultOutput   = "simplified.md"
	DefaultMode     = ModeSimplify
	DefaultLevel    = "medium"
	DefaultTarget   = "es"
	DefaultCacheDir = ".easyread-cache"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Input      string `yaml:"input" json:"input"`
	Output     string `yaml:"output" json:"output"`
	OutputPDF  string `yaml:"outputPDF" json:"outputPDF"`
	OutputHTML string `yaml:"outputHTML" json:"outputHTML"`
	OutputJSON string `yaml:"outputJSON" json:"outputJSON"`

	Mode         string `yaml:"mode" json:"mode"`
	Level        string `yaml:"level" json:"level"`
	Target       string `yaml:"target" json:"target"`
	ShowOriginal bool   `yaml:"showOriginal" json:"showOriginal"`
	AddExamples  bool   `yaml:"addExamples" json:"addExamples"`
	Seed         int64  `yaml:"seed" json:"seed"`
	Verbose      bool   `yaml:"verbose" json:"verbose"`

	LLM struct {
		BaseURL      string `yaml:"base" json:"base"`
		Model        string `yaml:"model" json:"model"`
		APIKey       string `yaml:"key" json:"key"`
		CacheOnly    bool   `yaml:"cacheOnly" json:"cacheOnly"`
		SystemPrompt string `yaml:"systemPrompt" json:"systemPrompt"`
	} `yaml:"llm" json:"llm"`

	Translate struct {
		URL string `yaml:"url" json:"url"`
		Key string `yaml:"key" json:"key"`
	} `yaml:"translate" json:"translate"`

	Fetch struct {
		IgnoreRobots bool `yaml:"ignoreRobots" json:"ignoreRobots"`
	} `yaml:"fetch" json:"fetch"`

	Cache struct {
		Dir         string        `yaml:"dir" json:"dir"`
		MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
		MaxEntries  int           `yaml:"maxEntries" json:"maxEntries"`
		Clear       bool          `yaml:"clear" json:"clear"`
		StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
	} `yaml:"cache" json:"cache"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from fc into cfg for any fields that are
// unset or still at their flag default.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	setStr := func(dst *string, def, v string) {
		if (*dst == "" || *dst == def) && v != "" {
			*dst = v
		}
	}
	setStr(&cfg.InputPath, DefaultInput, fc.Input)
	setStr(&cfg.OutputPath, DefaultOutput, fc.Output)
	setStr(&cfg.OutputPDFPath, "", fc.OutputPDF)
	setStr(&cfg.OutputHTMLPath, "", fc.OutputHTML)
	setStr(&cfg.OutputJSONPath, "", fc.OutputJSON)
	setStr(&cfg.Mode, DefaultMode, fc.Mode)
	setStr(&cfg.Level, DefaultLevel, fc.Level)
	setStr(&cfg.TargetLanguage, DefaultTarget, fc.Target)
	setStr(&cfg.LLMBaseURL, "", fc.LLM.BaseURL)
	setStr(&cfg.LLMModel, "", fc.LLM.Model)
	setStr(&cfg.LLMAPIKey, "", fc.LLM.APIKey)
	setStr(&cfg.SystemPrompt, "", fc.LLM.SystemPrompt)
	setStr(&cfg.TranslateURL, "", fc.Translate.URL)
	setStr(&cfg.TranslateKey, "", fc.Translate.Key)
	setStr(&cfg.CacheDir, DefaultCacheDir, fc.Cache.Dir)

	if cfg.Seed == 0 && fc.Seed != 0 {
		cfg.Seed = fc.Seed
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = fc.Cache.MaxAge
	}
	if cfg.CacheMaxEntries == 0 && fc.Cache.MaxEntries > 0 {
		cfg.CacheMaxEntries = fc.Cache.MaxEntries
	}

	setBool := func(dst *bool, v bool) {
		if !*dst && v {
			*dst = true
		}
	}
	setBool(&cfg.ShowOriginal, fc.ShowOriginal)
	setBool(&cfg.AddExamples, fc.AddExamples)
	setBool(&cfg.Verbose, fc.Verbose)
	setBool(&cfg.LLMCacheOnly, fc.LLM.CacheOnly)
	setBool(&cfg.IgnoreRobots, fc.Fetch.IgnoreRobots)
	setBool(&cfg.CacheClear, fc.Cache.Clear)
	setBool(&cfg.CacheStrictPerms, fc.Cache.StrictPerms)
}

// ValidateConfig checks required settings and that names resolve.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.InputPath) == "" {
		return errors.New("config: input path is required")
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return errors.New("config: output path is required")
	}
	switch mode(cfg) {
	case ModeSimplify:
		if _, err := simplify.LevelByName(levelName(cfg)); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	case ModeTranslate:
		if _, err := translate.Lookup(cfg.TargetLanguage); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	case ModeExtract:
	default:
		return fmt.Errorf("config: unknown mode %q (want simplify, translate or extract)", cfg.Mode)
	}
	if cfg.CacheMaxAge < 0 || cfg.CacheMaxEntries < 0 {
		return errors.New("config: negative cache limits are not allowed")
	}
	if cfg.LLMCacheOnly && strings.TrimSpace(cfg.CacheDir) == "" {
		return errors.New("config: llm.cacheOnly requires a cache directory")
	}
	return nil
}

func mode(cfg Config) string {
	m := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if m == "" {
		return DefaultMode
	}
	return m
}

func levelName(cfg Config) string {
	if strings.TrimSpace(cfg.Level) == "" {
		return DefaultLevel
	}
	return cfg.Level
}
