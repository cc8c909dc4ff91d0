package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// FromPDF extracts the text layer page by page. Pages are separated by a
// blank line and whitespace inside a page is collapsed. Scanned PDFs with
// no text layer are reported as unsupported.
func FromPDF(b []byte) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = Document{}, fmt.Errorf("read pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return Document{}, fmt.Errorf("read pdf: %w", err)
	}
	fonts := make(map[string]*pdf.Font)
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := p.Font(name)
				fonts[name] = &f
			}
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			return Document{}, fmt.Errorf("read pdf page %d: %w", i, err)
		}
		if t := strings.Join(strings.Fields(text), " "); t != "" {
			pages = append(pages, t)
		}
	}
	if len(pages) == 0 {
		return Document{}, fmt.Errorf("%w: pdf has no text layer", ErrUnsupportedType)
	}
	return Document{Text: strings.Join(pages, "\n\n"), Kind: KindPDF}, nil
}
