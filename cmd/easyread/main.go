package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/easyread/internal/app"
	"github.com/hyperifyio/easyread/internal/assist"
	"github.com/hyperifyio/easyread/internal/budget"
	"github.com/hyperifyio/easyread/internal/extract"
	"github.com/hyperifyio/easyread/internal/fetch"
	"github.com/hyperifyio/easyread/internal/simplify"
	"github.com/hyperifyio/easyread/internal/translate"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := app.LoadEnvFiles(".env", ".env.local"); err != nil {
		log.Warn().Err(err).Msg("dotenv load failed")
	}

	var (
		configPath       string
		inputPath        string
		outputPath       string
		outputPDF        string
		outputHTML       string
		outputJSON       string
		mode             string
		level            string
		target           string
		showOriginal     bool
		addExamples      bool
		seed             int64
		llmBaseURL       string
		llmModel         string
		llmKey           string
		llmCacheOnly     bool
		systemPrompt     string
		systemPromptFile string
		translateURL     string
		translateKey     string
		cacheDir         string
		cacheMaxAge      time.Duration
		cacheMaxEntries  int
		cacheClear       bool
		cacheStrict      bool
		verbose          bool
		listLevels       bool
		listLanguages    bool
		showVersion      bool
		ignoreRobots     bool
	)

	flag.StringVar(&configPath, "config", os.Getenv("EASYREAD_CONFIG"), "Path to YAML or JSON config file")
	flag.StringVar(&inputPath, "input", app.DefaultInput, "Input file (.txt, .md, .html), http(s) URL, or - for stdin")
	flag.StringVar(&outputPath, "output", app.DefaultOutput, "Path to write the Markdown report")
	flag.StringVar(&outputPDF, "output.pdf", "", "Optional path to also write a PDF")
	flag.StringVar(&outputHTML, "output.html", "", "Optional path to also write an HTML page")
	flag.StringVar(&outputJSON, "output.json", "", "Optional path to write a JSON run manifest")
	flag.StringVar(&mode, "mode", app.DefaultMode, "simplify, translate or extract")
	flag.StringVar(&level, "level", app.DefaultLevel, "Simplification level: light, medium or heavy")
	flag.StringVar(&target, "target", app.DefaultTarget, "Target language code for translate mode")
	flag.BoolVar(&showOriginal, "show-original", false, "Show the original text next to the simplified version")
	flag.BoolVar(&addExamples, "add-examples", false, "Append an educational note to the simplified text")
	flag.Int64Var(&seed, "seed", 0, "Seed for example selection (0 = random)")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name; empty uses rules only")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	flag.BoolVar(&llmCacheOnly, "llm.cacheOnly", false, "Answer from the LLM cache only; misses fall back to rules")
	flag.StringVar(&systemPrompt, "llm.systemPrompt", os.Getenv("LLM_SYSTEM_PROMPT"), "Override the simplification system prompt")
	flag.StringVar(&systemPromptFile, "llm.systemPromptFile", os.Getenv("LLM_SYSTEM_PROMPT_FILE"), "File containing the simplification system prompt")
	flag.StringVar(&translateURL, "translate.url", os.Getenv("TRANSLATE_URL"), "LibreTranslate base URL")
	flag.StringVar(&translateKey, "translate.key", os.Getenv("TRANSLATE_KEY"), "LibreTranslate API key (optional)")
	flag.BoolVar(&ignoreRobots, "fetch.ignoreRobots", false, "Fetch URL input even when robots.txt disallows it")
	flag.StringVar(&cacheDir, "cache.dir", app.DefaultCacheDir, "Cache directory path; empty disables caching")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
	flag.IntVar(&cacheMaxEntries, "cache.maxEntries", 0, "Keep at most this many cache entries; 0 disables")
	flag.BoolVar(&cacheClear, "cache.clear", false, "Clear cache directory before run")
	flag.BoolVar(&cacheStrict, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&listLevels, "levels", false, "List simplification levels and exit")
	flag.BoolVar(&listLanguages, "languages", false, "List translation languages and exit")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	switch {
	case showVersion:
		fmt.Println("easyread", app.VersionString())
		return
	case listLevels:
		for _, l := range simplify.Levels() {
			fmt.Printf("%-7s %s: %s\n", l.Key, l.Name, l.Description)
		}
		return
	case listLanguages:
		for _, l := range translate.Languages() {
			fmt.Printf("%s  %s\n", l.Code, l.Label())
		}
		return
	}

	if strings.TrimSpace(systemPromptFile) != "" {
		if b, err := os.ReadFile(systemPromptFile); err == nil {
			systemPrompt = string(b)
		} else {
			log.Warn().Err(err).Str("path", systemPromptFile).Msg("system prompt file unreadable")
		}
	}

	cfg := app.Config{
		InputPath:        inputPath,
		OutputPath:       outputPath,
		OutputPDFPath:    outputPDF,
		OutputHTMLPath:   outputHTML,
		OutputJSONPath:   outputJSON,
		Mode:             mode,
		Level:            level,
		TargetLanguage:   target,
		ShowOriginal:     showOriginal,
		AddExamples:      addExamples,
		Seed:             seed,
		LLMBaseURL:       llmBaseURL,
		LLMModel:         llmModel,
		LLMAPIKey:        llmKey,
		LLMCacheOnly:     llmCacheOnly,
		SystemPrompt:     systemPrompt,
		TranslateURL:     translateURL,
		TranslateKey:     translateKey,
		IgnoreRobots:     ignoreRobots,
		CacheDir:         cacheDir,
		CacheMaxAge:      cacheMaxAge,
		CacheMaxEntries:  cacheMaxEntries,
		CacheClear:       cacheClear,
		CacheStrictPerms: cacheStrict,
		Verbose:          verbose,
	}
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file")
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
		app.ApplyEnvOverrides(&cfg)
		reapplyExplicitFlags(&cfg, explicitFlags())
	}
	app.ApplyEnvToConfig(&cfg)

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(exitCode(err))
	}
}

// explicitFlags returns the names of flags set on the command line.
func explicitFlags() map[string]string {
	set := map[string]string{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })
	return set
}

// reapplyExplicitFlags restores command-line values after env overrides so
// flags keep the highest precedence.
func reapplyExplicitFlags(cfg *app.Config, set map[string]string) {
	strs := map[string]*string{
		"llm.base":      &cfg.LLMBaseURL,
		"llm.model":     &cfg.LLMModel,
		"llm.key":       &cfg.LLMAPIKey,
		"translate.url": &cfg.TranslateURL,
		"translate.key": &cfg.TranslateKey,
		"cache.dir":     &cfg.CacheDir,
		"mode":          &cfg.Mode,
		"level":         &cfg.Level,
		"target":        &cfg.TargetLanguage,
	}
	for name, dst := range strs {
		if v, ok := set[name]; ok {
			*dst = v
		}
	}
	bools := map[string]*bool{
		"v":                  &cfg.Verbose,
		"cache.clear":        &cfg.CacheClear,
		"cache.strictPerms":  &cfg.CacheStrictPerms,
		"llm.cacheOnly":      &cfg.LLMCacheOnly,
		"show-original":      &cfg.ShowOriginal,
		"add-examples":       &cfg.AddExamples,
		"fetch.ignoreRobots": &cfg.IgnoreRobots,
	}
	for name, dst := range bools {
		if v, ok := set[name]; ok {
			*dst = v == "true"
		}
	}
	if v, ok := set["cache.maxAge"]; ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CacheMaxAge = d
		}
	}
	if v, ok := set["cache.maxEntries"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CacheMaxEntries = n
		}
	}
}

// exitCode maps sentinel errors describing bad input to 2 and everything
// else to 1.
func exitCode(err error) int {
	for _, target := range []error{
		app.ErrNothingToSimplify,
		simplify.ErrUnknownLevel,
		budget.ErrEmptyText,
		budget.ErrTextTooShort,
		budget.ErrTextTooLong,
		extract.ErrUnsupportedType,
		extract.ErrFileTooLarge,
		fetch.ErrUnsupportedContent,
		fetch.ErrDisallowed,
		translate.ErrUnsupportedLanguage,
		assist.ErrEmptyReply,
	} {
		if errors.Is(err, target) {
			return 2
		}
	}
	return 1
}

func run(ctx context.Context, cfg app.Config) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()
	return a.Run(ctx)
}
