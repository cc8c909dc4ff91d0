// Package app wires configuration, caching, the simplification engines,
// translation and report writing into a single run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/easyread/internal/assist"
	"github.com/hyperifyio/easyread/internal/budget"
	"github.com/hyperifyio/easyread/internal/cache"
	"github.com/hyperifyio/easyread/internal/extract"
	"github.com/hyperifyio/easyread/internal/fetch"
	"github.com/hyperifyio/easyread/internal/llm"
	"github.com/hyperifyio/easyread/internal/report"
	"github.com/hyperifyio/easyread/internal/robots"
	"github.com/hyperifyio/easyread/internal/simplify"
	"github.com/hyperifyio/easyread/internal/translate"
	"github.com/hyperifyio/easyread/internal/validate"
)

// ErrNothingToSimplify is returned when the input holds no text, or text
// too short to be worth simplifying.
var ErrNothingToSimplify = errors.New("nothing to simplify")

type App struct {
	cfg        Config
	store      *cache.Store
	rules      simplify.Engine
	assisted   simplify.Engine
	translator *translate.Translator
	fetcher    *fetch.Client
	rng        *rand.Rand
	now        func() time.Time
	stdin      io.Reader
}

func New(ctx context.Context, cfg Config) (*App, error) {
	cfg.Mode = mode(cfg)
	cfg.Level = levelName(cfg)

	a := &App{
		cfg:   cfg,
		rules: simplify.Rules{},
		now:   time.Now,
		stdin: os.Stdin,
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	a.rng = rand.New(rand.NewSource(seed))

	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			if n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge); err != nil {
				log.Warn().Err(err).Msg("cache purge failed")
			} else if n > 0 {
				log.Debug().Int("removed", n).Msg("purged expired cache entries")
			}
		}
		if cfg.CacheMaxEntries > 0 {
			if _, err := cache.EnforceMaxEntries(cfg.CacheDir, cfg.CacheMaxEntries); err != nil {
				log.Warn().Err(err).Msg("cache size limit failed")
			}
		}
		a.store = &cache.Store{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}

	hc := newHTTPClient()
	if strings.TrimSpace(cfg.LLMModel) != "" {
		provider := llm.NewOpenAIProvider(cfg.LLMAPIKey, cfg.LLMBaseURL, hc)
		if !cfg.LLMCacheOnly {
			preflight(ctx, provider)
		}
		a.assisted = &assist.Simplifier{
			Client:       provider,
			Model:        cfg.LLMModel,
			Cache:        a.store,
			SystemPrompt: cfg.SystemPrompt,
			CacheOnly:    cfg.LLMCacheOnly,
		}
	}
	a.translator = translate.New(cfg.TranslateURL, cfg.TranslateKey, hc, a.store)
	a.fetcher = &fetch.Client{
		HTTPClient:  hc,
		UserAgent:   "easyread/" + BuildVersion,
		MaxAttempts: 2,
		Cache:       a.store,
	}
	if !cfg.IgnoreRobots {
		a.fetcher.Robots = &robots.Checker{HTTPClient: hc, UserAgent: a.fetcher.UserAgent, Cache: a.store}
	}
	return a, nil
}

// preflight lists models to surface a misconfigured endpoint early. It
// never fails the run; simplification falls back to rules instead.
func preflight(ctx context.Context, l llm.ModelLister) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	models, err := l.ListModels(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("LLM model list failed; continuing")
		return
	}
	if len(models.Models) == 0 {
		log.Warn().Msg("LLM returned zero models")
		return
	}
	log.Info().Int("count", len(models.Models)).Msg("LLM models available")
}

func (a *App) Close() {}

// Run reads the input and executes the configured mode.
func (a *App) Run(ctx context.Context) error {
	doc, err := a.readInput(ctx)
	if err != nil {
		return err
	}
	log.Debug().Str("input", a.cfg.InputPath).Str("kind", string(doc.Kind)).Int("chars", len(doc.Text)).Msg("input loaded")
	switch a.cfg.Mode {
	case ModeSimplify:
		return a.runSimplify(ctx, doc)
	case ModeTranslate:
		return a.runTranslate(ctx, doc)
	case ModeExtract:
		return a.runExtract(doc)
	}
	return fmt.Errorf("unknown mode %q", a.cfg.Mode)
}

func (a *App) readInput(ctx context.Context) (extract.Document, error) {
	if fetch.IsURL(a.cfg.InputPath) {
		page, err := a.fetcher.Get(ctx, a.cfg.InputPath)
		if err != nil {
			return extract.Document{}, fmt.Errorf("fetch input: %w", err)
		}
		return extract.FromBytes(page.FileName(), page.Body)
	}
	if a.cfg.InputPath != "-" {
		return extract.Load(a.cfg.InputPath)
	}
	b, err := io.ReadAll(io.LimitReader(a.stdin, int64(budget.MaxUploadBytes)+1))
	if err != nil {
		return extract.Document{}, fmt.Errorf("read stdin: %w", err)
	}
	return extract.FromBytes("stdin.txt", b)
}

func (a *App) runSimplify(ctx context.Context, doc extract.Document) error {
	level, err := simplify.LevelByName(a.cfg.Level)
	if err != nil {
		return err
	}
	text, err := budget.CheckSimplifyInput(doc.Text)
	if errors.Is(err, budget.ErrEmptyText) || errors.Is(err, budget.ErrTextTooShort) {
		return fmt.Errorf("%w: %w", ErrNothingToSimplify, err)
	}
	if err != nil {
		return err
	}

	res := a.simplify(ctx, text, level)
	if a.cfg.AddExamples {
		res.Text = report.AddExample(res.Text, level, a.rng)
		res.Stats = simplify.ComputeStats(text, res.Text)
	}
	log.Info().
		Str("level", level.Key).
		Str("engine", res.Engine).
		Int("words_before", res.Stats.OriginalWords).
		Int("words_after", res.Stats.SimplifiedWords).
		Int("improvement", res.Stats.Improvement).
		Msg("simplified")

	var body string
	if a.cfg.ShowOriginal {
		body = report.FormatWithOriginal(text, res)
	} else {
		body = report.FormatSummary(res)
	}
	footer := report.NewFooter(res.Engine, level.Key, BuildVersion)
	title := "Simplified Text - " + level.Name
	if doc.Title != "" {
		title = doc.Title + " - " + level.Name
	}
	stats := res.Stats
	return a.writeOutputs(title, report.AppendFooter(body, footer), manifest{
		RunID:  footer.RunID,
		Engine: res.Engine,
		Level:  level.Key,
		Stats:  &stats,
	}, text)
}

// simplify prefers the assisted engine and falls back to rules on any
// error, or when the assisted text overshoots the level's limits.
func (a *App) simplify(ctx context.Context, text string, level simplify.Level) simplify.Result {
	if a.assisted != nil {
		res, err := a.assisted.Simplify(ctx, text, level)
		if err == nil {
			err = validate.LevelFit(res.Text, level)
		}
		if err == nil {
			return res
		}
		log.Warn().Err(err).Str("engine", a.assisted.Name()).Msg("assisted simplification rejected; using rules")
	}
	res, _ := a.rules.Simplify(ctx, text, level)
	return res
}

func (a *App) runTranslate(ctx context.Context, doc extract.Document) error {
	res, err := a.translator.Translate(ctx, doc.Text, a.cfg.TargetLanguage)
	if err != nil {
		return err
	}
	if res.Source != "en" {
		log.Warn().Str("detected", res.Source).Msg("input does not look like English; translating anyway")
	}
	log.Info().Str("target", res.Language.Code).Str("provider", res.Provider).Msg("translated")

	title := "Translation to " + res.Language.Name
	if res.Provider == "demo" {
		title += " (Demo)"
	}
	body := "# " + title + "\n\n" + res.Text
	footer := report.NewFooter(res.Provider, "", BuildVersion)
	footer.Target = res.Language.Code
	return a.writeOutputs(title, report.AppendFooter(body, footer), manifest{
		RunID:  footer.RunID,
		Engine: res.Provider,
		Target: res.Language.Code,
		Source: res.Source,
	}, doc.Text)
}

func (a *App) runExtract(doc extract.Document) error {
	text := strings.TrimSpace(doc.Text)
	if text == "" {
		return fmt.Errorf("%w: no text found in %s", budget.ErrEmptyText, a.cfg.InputPath)
	}
	body := text
	title := doc.Title
	if title != "" {
		body = "# " + title + "\n\n" + text
	} else {
		title = "Extracted Text"
	}
	return a.writeOutputs(title, body+"\n", manifest{RunID: uuid.NewString()}, text)
}

func (a *App) writeOutputs(title, markdown string, m manifest, input string) error {
	if err := os.WriteFile(a.cfg.OutputPath, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	outputs := []string{a.cfg.OutputPath}
	log.Info().Str("out", a.cfg.OutputPath).Msg("wrote report")

	if p := strings.TrimSpace(a.cfg.OutputHTMLPath); p != "" {
		if err := report.WriteHTML(title, markdown, p); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
		outputs = append(outputs, p)
		log.Info().Str("out", p).Msg("wrote html")
	}
	if p := strings.TrimSpace(a.cfg.OutputPDFPath); p != "" {
		if err := report.WritePDF(title, markdown, p); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		outputs = append(outputs, p)
		log.Info().Str("out", p).Msg("wrote pdf")
	}
	if p := strings.TrimSpace(a.cfg.OutputJSONPath); p != "" {
		m.Version = BuildVersion
		m.GeneratedAt = a.now().UTC()
		m.Mode = a.cfg.Mode
		m.Input = a.cfg.InputPath
		m.InputSHA256 = computeSHA256Hex(input)
		m.InputChars = len([]rune(input))
		m.Outputs = outputs
		if err := writeManifest(p, m); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		log.Info().Str("out", p).Msg("wrote manifest")
	}
	return nil
}
