// Package extract turns uploaded lesson files into plain text for the
// simplifier.
package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperifyio/easyread/internal/budget"
)

// Kind names the input format a Document came from.
type Kind string

const (
	KindText     Kind = "text"
	KindHTML     Kind = "html"
	KindMarkdown Kind = "markdown"
	KindPDF      Kind = "pdf"
)

// Document is the text extracted from one file.
type Document struct {
	Title string
	Text  string
	Kind  Kind
}

var (
	// ErrUnsupportedType is returned for file types that cannot be read,
	// such as Word documents, images and PDFs without a text layer.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrFileTooLarge is returned for files over budget.MaxUploadBytes.
	ErrFileTooLarge = errors.New("file too large")
)

// Extractor converts raw file bytes into a Document.
type Extractor interface {
	Extract(input []byte) (Document, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(input []byte) (Document, error)

func (f ExtractorFunc) Extract(input []byte) (Document, error) { return f(input) }

func fromText(b []byte) (Document, error) {
	s, err := DecodeText(b)
	if err != nil {
		return Document{}, err
	}
	return Document{Text: strings.TrimSpace(s), Kind: KindText}, nil
}

var byExtension = map[string]Extractor{
	".txt":      ExtractorFunc(fromText),
	".text":     ExtractorFunc(fromText),
	".html":     ExtractorFunc(func(b []byte) (Document, error) { return FromHTML(b), nil }),
	".htm":      ExtractorFunc(func(b []byte) (Document, error) { return FromHTML(b), nil }),
	".md":       ExtractorFunc(func(b []byte) (Document, error) { return FromMarkdown(b), nil }),
	".markdown": ExtractorFunc(func(b []byte) (Document, error) { return FromMarkdown(b), nil }),
	".pdf":      ExtractorFunc(FromPDF),
}

// ForName returns the extractor registered for the file name's extension.
func ForName(name string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(name))
	ex, ok := byExtension[ext]
	if !ok {
		if ext == "" {
			ext = "(none)"
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	return ex, nil
}

// FromBytes extracts text from data using the extractor for name.
func FromBytes(name string, data []byte) (Document, error) {
	if len(data) > budget.MaxUploadBytes {
		return Document{}, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, len(data))
	}
	ex, err := ForName(name)
	if err != nil {
		return Document{}, err
	}
	return ex.Extract(data)
}

// Load reads and extracts the file at path. The type is checked before the
// file is read so unsupported uploads fail fast.
func Load(path string) (Document, error) {
	if _, err := ForName(path); err != nil {
		return Document{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, int64(budget.MaxUploadBytes)+1))
	if err != nil {
		return Document{}, fmt.Errorf("read input: %w", err)
	}
	return FromBytes(path, data)
}
