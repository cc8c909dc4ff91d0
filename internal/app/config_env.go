package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	setStr := func(dst *string, keys ...string) {
		if *dst != "" {
			return
		}
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}
	setStr(&cfg.LLMBaseURL, "LLM_BASE_URL")
	setStr(&cfg.LLMModel, "LLM_MODEL")
	setStr(&cfg.LLMAPIKey, "LLM_API_KEY")
	setStr(&cfg.TranslateURL, "TRANSLATE_URL", "LIBRETRANSLATE_URL")
	setStr(&cfg.TranslateKey, "TRANSLATE_KEY", "LIBRETRANSLATE_KEY")
	setStr(&cfg.CacheDir, "CACHE_DIR")
	setStr(&cfg.Mode, "EASYREAD_MODE")
	setStr(&cfg.Level, "EASYREAD_LEVEL")
	setStr(&cfg.TargetLanguage, "TARGET_LANG")

	if cfg.CacheMaxAge == 0 {
		if d, ok := envDuration("CACHE_MAX_AGE"); ok {
			cfg.CacheMaxAge = d
		}
	}
	if cfg.CacheMaxEntries == 0 {
		if n, ok := envInt("CACHE_MAX_ENTRIES"); ok {
			cfg.CacheMaxEntries = n
		}
	}

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		if v, ok := envBool(envKey); ok && v {
			*dst = true
		}
	}
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.CacheClear, "CACHE_CLEAR")
	setBool(&cfg.CacheStrictPerms, "CACHE_STRICT_PERMS")
	setBool(&cfg.LLMCacheOnly, "LLM_CACHE_ONLY")
	setBool(&cfg.ShowOriginal, "SHOW_ORIGINAL")
	setBool(&cfg.AddExamples, "ADD_EXAMPLES")
	setBool(&cfg.IgnoreRobots, "FETCH_IGNORE_ROBOTS")
}

// ApplyEnvOverrides forcefully overrides cfg fields with environment
// variables that are set. It lets env take precedence over a config file
// while flags stay highest.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}
	setStr := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				*dst = v
			}
		}
	}
	setStr(&cfg.LLMBaseURL, "LLM_BASE_URL")
	setStr(&cfg.LLMModel, "LLM_MODEL")
	setStr(&cfg.LLMAPIKey, "LLM_API_KEY")
	setStr(&cfg.TranslateURL, "LIBRETRANSLATE_URL", "TRANSLATE_URL")
	setStr(&cfg.TranslateKey, "LIBRETRANSLATE_KEY", "TRANSLATE_KEY")
	setStr(&cfg.CacheDir, "CACHE_DIR")
	setStr(&cfg.Mode, "EASYREAD_MODE")
	setStr(&cfg.Level, "EASYREAD_LEVEL")
	setStr(&cfg.TargetLanguage, "TARGET_LANG")

	if d, ok := envDuration("CACHE_MAX_AGE"); ok {
		cfg.CacheMaxAge = d
	}
	if n, ok := envInt("CACHE_MAX_ENTRIES"); ok {
		cfg.CacheMaxEntries = n
	}

	setBool := func(dst *bool, envKey string) {
		if v, ok := envBool(envKey); ok {
			*dst = v
		}
	}
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.CacheClear, "CACHE_CLEAR")
	setBool(&cfg.CacheStrictPerms, "CACHE_STRICT_PERMS")
	setBool(&cfg.LLMCacheOnly, "LLM_CACHE_ONLY")
	setBool(&cfg.ShowOriginal, "SHOW_ORIGINAL")
	setBool(&cfg.AddExamples, "ADD_EXAMPLES")
	setBool(&cfg.IgnoreRobots, "FETCH_IGNORE_ROBOTS")
}

func envBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

func envInt(key string) (int, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func envDuration(key string) (time.Duration, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, false
	}
	return d, true
}
