package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/easyread/internal/budget"
	"github.com/hyperifyio/easyread/internal/cache"
)

// Result is one translation together with the provider that produced it.
type Result struct {
	Text     string   `json:"translatedText"`
	Language Language `json:"-"`
	Provider string   `json:"provider"`
	// Source is the detected language of the input.
	Source string `json:"source"`
}

// Translator runs Providers in order and falls back to Fallback.
type Translator struct {
	Providers []Provider
	Fallback  Provider
	Cache     *cache.Store
}

// New returns the standard chain: LibreTranslate when baseURL is set, then
// the phrase map, then the demo notice.
func New(baseURL, apiKey string, hc *http.Client, store *cache.Store) *Translator {
	t := &Translator{Fallback: Demo{}, Cache: store}
	if strings.TrimSpace(baseURL) != "" {
		t.Providers = append(t.Providers, &LibreTranslate{BaseURL: baseURL, APIKey: apiKey, HTTPClient: hc})
	}
	t.Providers = append(t.Providers, PhraseMap{})
	return t
}

// Translate validates text and target, then returns the first provider
// result. Provider failures are logged and skipped.
func (t *Translator) Translate(ctx context.Context, text, target string) (Result, error) {
	text, err := budget.CheckTranslateInput(text)
	if err != nil {
		return Result{}, err
	}
	lang, err := Lookup(target)
	if err != nil {
		return Result{}, err
	}
	source := DetectLanguage(text)

	// Entries are scoped to the provider chain that produced them.
	key := cache.KeyFrom("translate", t.chain(), lang.Code, text)
	if t.Cache != nil {
		var cached Result
		if ok, _ := t.Cache.GetJSON(ctx, key, &cached); ok && cached.Text != "" {
			cached.Language = lang
			log.Debug().Str("target", lang.Code).Str("provider", cached.Provider).Msg("translation cache hit")
			return cached, nil
		}
	}

	for _, p := range t.Providers {
		out, err := p.Translate(ctx, text, lang)
		if err != nil {
			if !errors.Is(err, ErrNotCovered) {
				log.Warn().Err(err).Str("provider", p.Name()).Str("target", lang.Code).Msg("translation provider failed")
			}
			continue
		}
		res := Result{Text: out, Language: lang, Provider: p.Name(), Source: source}
		if t.Cache != nil {
			if err := t.Cache.SaveJSON(ctx, key, res); err != nil {
				log.Warn().Err(err).Msg("translation cache save failed")
			}
		}
		return res, nil
	}

	fb := t.Fallback
	if fb == nil {
		fb = Demo{}
	}
	out, err := fb.Translate(ctx, text, lang)
	if err != nil {
		return Result{}, fmt.Errorf("fallback translation: %w", err)
	}
	return Result{Text: out, Language: lang, Provider: fb.Name(), Source: source}, nil
}

func (t *Translator) chain() string {
	names := make([]string, 0, len(t.Providers))
	for _, p := range t.Providers {
		names = append(names, p.Name())
	}
	return strings.Join(names, ",")
}
