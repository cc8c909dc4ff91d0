package translate

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language describes a translation target.
type Language struct {
	Code   string
	Name   string
	Flag   string
	Native string
}

// Label is the human-facing form used in menus and report headings.
func (l Language) Label() string {
	return fmt.Sprintf("%s %s (%s)", l.Flag, l.Name, l.Native)
}

// ErrUnsupportedLanguage is returned for target codes outside the table.
var ErrUnsupportedLanguage = errors.New("unsupported target language")

var languages = []Language{
	{"es", "Spanish", "🇪🇸", "Español"},
	{"fr", "French", "🇫🇷", "Français"},
	{"de", "German", "🇩🇪", "Deutsch"},
	{"it", "Italian", "🇮🇹", "Italiano"},
	{"pt", "Portuguese", "🇵🇹", "Português"},
	{"ru", "Russian", "🇷🇺", "Русский"},
	{"ja", "Japanese", "🇯🇵", "日本語"},
	{"ko", "Korean", "🇰🇷", "한국어"},
	{"zh", "Chinese", "🇨🇳", "中文"},
	{"ar", "Arabic", "🇸🇦", "العربية"},
	{"hi", "Hindi", "🇮🇳", "हिन्दी"},
	{"sw", "Swahili", "🇹🇿", "Kiswahili"},
	{"nl", "Dutch", "🇳🇱", "Nederlands"},
	{"sv", "Swedish", "🇸🇪", "Svenska"},
	{"tr", "Turkish", "🇹🇷", "Türkçe"},
}

// Languages returns the supported targets in menu order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Lookup resolves a BCP 47 tag such as "es", "ES" or "pt-BR" to a
// supported Language by its base language.
func Lookup(code string) (Language, error) {
	code = strings.TrimSpace(code)
	tag, err := language.Parse(code)
	if err != nil {
		return Language{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	base, _ := tag.Base()
	for _, l := range languages {
		if l.Code == base.String() {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
}
