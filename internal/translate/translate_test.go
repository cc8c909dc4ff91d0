package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/hyperifyio/easyread/internal/budget"
	"github.com/hyperifyio/easyread/internal/cache"
)

func TestLookup(t *testing.T) {
	for _, code := range []string{"es", "ES", " fr ", "pt-BR", "zh-Hans"} {
		if _, err := Lookup(code); err != nil {
			t.Fatalf("%q: unexpected error %v", code, err)
		}
	}
	l, _ := Lookup("pt-BR")
	if l.Code != "pt" || l.Name != "Portuguese" {
		t.Fatalf("pt-BR resolved to %+v", l)
	}
	for _, code := range []string{"", "xx-not-a-tag!", "pl", "en"} {
		if _, err := Lookup(code); !errors.Is(err, ErrUnsupportedLanguage) {
			t.Fatalf("%q: want ErrUnsupportedLanguage, got %v", code, err)
		}
	}
	if n := len(Languages()); n != 15 {
		t.Fatalf("expected 15 languages, got %d", n)
	}
	if got := languages[0].Label(); got != "🇪🇸 Spanish (Español)" {
		t.Fatalf("label = %q", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := map[string]string{
		"the cat is in the house and it is warm":  "en",
		"el perro come en la casa y no se va":     "es",
		"le chat est dans la maison pour dormir":  "fr",
		"der Hund und die Katze sind in den Haus": "de",
		"xyz":                                     "en",
	}
	for in, want := range cases {
		if got := DetectLanguage(in); got != want {
			t.Fatalf("DetectLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPhraseMap(t *testing.T) {
	es, _ := Lookup("es")
	out, err := PhraseMap{}.Translate(context.Background(), "Every Student needs a good Teacher at school.", es)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Every estudiante needs a good profesor at escuela." + PhraseFooter
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
	// Earlier short terms take precedence over later phrases.
	out, _ = PhraseMap{}.Translate(context.Background(), "quality education", es)
	if !strings.HasPrefix(out, "quality educación") {
		t.Fatalf("unexpected ordering result %q", out)
	}
	ja, _ := Lookup("ja")
	if _, err := (PhraseMap{}).Translate(context.Background(), "text", ja); !errors.Is(err, ErrNotCovered) {
		t.Fatalf("want ErrNotCovered, got %v", err)
	}
}

func TestDemo(t *testing.T) {
	fixed := func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC) }
	sw, _ := Lookup("sw")
	out, _ := Demo{Now: fixed}.Translate(context.Background(), "Water is life.", sw)
	if !strings.HasPrefix(out, "[TAFSIRI YA KISWAHILI - ONYESHO LA ELIMU]\n\nWater is life.\n") {
		t.Fatalf("unexpected swahili demo: %q", out)
	}
	if !strings.Contains(out, "Tarehe: 3/5/2024, 2:07:09 PM") {
		t.Fatalf("date missing: %q", out)
	}
	ja, _ := Lookup("ja")
	out, _ = Demo{Now: fixed}.Translate(context.Background(), "Water is life.", ja)
	if !strings.HasPrefix(out, "[JAPANESE TRANSLATION - EDUCATIONAL DEMO]") || !strings.Contains(out, "Target language: Japanese") {
		t.Fatalf("unexpected generic demo: %q", out)
	}
}

func TestLibreTranslate_PostsAndTruncates(t *testing.T) {
	var got libreRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/translate" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": " Hola "})
	}))
	defer srv.Close()

	l := &LibreTranslate{BaseURL: srv.URL + "/", HTTPClient: srv.Client()}
	es, _ := Lookup("es")
	out, err := l.Translate(context.Background(), strings.Repeat("é", 1500), es)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if out != "Hola" {
		t.Fatalf("out = %q", out)
	}
	if utf8.RuneCountInString(got.Q) != LibreMaxChars || got.Source != "en" || got.Target != "es" || got.Format != "text" {
		t.Fatalf("unexpected request body: source=%q target=%q format=%q len=%d", got.Source, got.Target, got.Format, utf8.RuneCountInString(got.Q))
	}
}

func TestLibreTranslate_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()
	l := &LibreTranslate{BaseURL: srv.URL, HTTPClient: srv.Client()}
	fr, _ := Lookup("fr")
	if _, err := l.Translate(context.Background(), "hi", fr); err == nil {
		t.Fatalf("expected error on 429")
	}
}

type failingProvider struct{ calls int }

func (f *failingProvider) Name() string { return "failing" }
func (f *failingProvider) Translate(context.Context, string, Language) (string, error) {
	f.calls++
	return "", errors.New("down")
}

func TestTranslator_FallsThroughChain(t *testing.T) {
	fail := &failingProvider{}
	tr := &Translator{
		Providers: []Provider{fail, PhraseMap{}},
		Fallback:  Demo{Now: func() time.Time { return time.Unix(0, 0).UTC() }},
	}
	ctx := context.Background()

	res, err := tr.Translate(ctx, "The teacher helps.", "de")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if res.Provider != "phrasemap" || !strings.HasPrefix(res.Text, "The Lehrer helps.") {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Source != "en" {
		t.Fatalf("source = %q", res.Source)
	}

	res, err = tr.Translate(ctx, "The teacher helps.", "ko")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if res.Provider != "demo" || !strings.HasPrefix(res.Text, "[KOREAN TRANSLATION - EDUCATIONAL DEMO]") {
		t.Fatalf("unexpected fallback %+v", res)
	}
	if fail.calls != 2 {
		t.Fatalf("failing provider should be tried each time, got %d", fail.calls)
	}
}

func TestTranslator_Validation(t *testing.T) {
	tr := New("", "", nil, nil)
	ctx := context.Background()
	if _, err := tr.Translate(ctx, "   ", "es"); !errors.Is(err, budget.ErrEmptyText) {
		t.Fatalf("want ErrEmptyText, got %v", err)
	}
	if _, err := tr.Translate(ctx, strings.Repeat("a", budget.MaxTranslateChars+1), "es"); !errors.Is(err, budget.ErrTextTooLong) {
		t.Fatalf("want ErrTextTooLong, got %v", err)
	}
	if _, err := tr.Translate(ctx, "hello", "klingon"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("want ErrUnsupportedLanguage, got %v", err)
	}
}

func TestTranslator_CachesProviderResults(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": "Bonjour"})
	}))
	defer srv.Close()

	tr := New(srv.URL, "", srv.Client(), &cache.Store{Dir: t.TempDir()})
	for i := 0; i < 2; i++ {
		res, err := tr.Translate(context.Background(), "Hello", "fr")
		if err != nil {
			t.Fatalf("translate: %v", err)
		}
		if res.Text != "Bonjour" || res.Provider != "libretranslate" || res.Language.Code != "fr" {
			t.Fatalf("unexpected result %+v", res)
		}
	}
	if hits != 1 {
		t.Fatalf("expected one upstream call, got %d", hits)
	}
}

func TestTranslator_CacheKeyedByProviderChain(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": "Der Lehrer hilft."})
	}))
	defer srv.Close()
	store := &cache.Store{Dir: t.TempDir()}
	ctx := context.Background()

	res, err := New("", "", nil, store).Translate(ctx, "The teacher helps.", "de")
	if err != nil || res.Provider != "phrasemap" {
		t.Fatalf("phrase map run: %+v %v", res, err)
	}
	res, err = New(srv.URL, "", srv.Client(), store).Translate(ctx, "The teacher helps.", "de")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if res.Provider != "libretranslate" || res.Text != "Der Lehrer hilft." || hits != 1 {
		t.Fatalf("cached phrase map answer served after adding a provider: %+v (hits %d)", res, hits)
	}
}
