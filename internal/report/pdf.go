package report

import (
	"bufio"
	"strings"
	"unicode"

	"github.com/jung-kurt/gofpdf"
)

// pdfReplacer maps report symbols outside the PDF core fonts' code page to
// plain equivalents.
var pdfReplacer = strings.NewReplacer("→", "->", "“", "\"", "”", "\"")

// WritePDF renders a Markdown report as a simple A4 PDF. Headings become
// bold lines, horizontal rules become spacing and bullets are kept. Emoji
// are dropped because the core fonts cannot draw them.
func WritePDF(title, markdown, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetCreator("easyread", true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, tr(title), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)

	sc := bufio.NewScanner(strings.NewReader(markdown))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		s := pdfText(sc.Text())
		switch {
		case s == "":
			pdf.Ln(4)
		case s == "---":
			pdf.Ln(6)
		case strings.HasPrefix(s, "#"):
			i := strings.IndexFunc(s, func(r rune) bool { return r != '#' })
			if i < 0 {
				continue
			}
			size := 14.0
			if i >= 2 {
				size = 12.0
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.MultiCell(0, 7, tr(strings.TrimSpace(s[i:])), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
		case isBanner(s):
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, tr(s), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
		default:
			pdf.MultiCell(0, 5, tr(s), "", "L", false)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(outPath)
}

// pdfText trims s and removes pictographs and variation selectors.
func pdfText(s string) string {
	s = pdfReplacer.Replace(s)
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.So, r) || unicode.Is(unicode.Variation_Selector, r) || r > 0xFFFF {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// isBanner reports whether a line is an all-caps section label such as
// "SIMPLIFICATION RESULTS:".
func isBanner(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter && len(s) > 3
}
