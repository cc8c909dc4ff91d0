// Package translate renders lesson text in another language. Providers are
// tried in order and a demonstration notice is the last resort, so a
// translation request always produces output.
package translate

import (
	"context"
	"errors"
)

// Provider translates English text into target.
type Provider interface {
	Name() string
	Translate(ctx context.Context, text string, target Language) (string, error)
}

// ErrNotCovered is returned by providers that have nothing for a language.
var ErrNotCovered = errors.New("language not covered by provider")
