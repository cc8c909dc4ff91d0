package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperifyio/easyread/internal/budget"
)

func TestFromHTML_PrefersMainAndSkipsBoilerplate(t *testing.T) {
	in := []byte(`<!doctype html><html><head><title>  Cells  </title></head><body>
<nav>Home | About</nav>
<div class="cookie-banner">We use cookies</div>
<main>
<h1>The Cell</h1>
<p>A cell is the   basic unit of life.</p>
<ul><li>Nucleus</li><li>Membrane</li></ul>
<script>var x = 1;</script>
</main>
<footer>Copyright</footer>
</body></html>`)
	doc := FromHTML(in)
	if doc.Title != "Cells" {
		t.Fatalf("title = %q", doc.Title)
	}
	want := "The Cell\n\nA cell is the basic unit of life.\n\nNucleus\nMembrane"
	if doc.Text != want {
		t.Fatalf("text mismatch:\n got %q\nwant %q", doc.Text, want)
	}
	for _, bad := range []string{"Home", "cookies", "Copyright", "var x"} {
		if strings.Contains(doc.Text, bad) {
			t.Fatalf("boilerplate %q leaked into %q", bad, doc.Text)
		}
	}
}

func TestFromHTML_FallsBackToBody(t *testing.T) {
	doc := FromHTML([]byte(`<html><body><p>Only body text.</p></body></html>`))
	if doc.Text != "Only body text." {
		t.Fatalf("text = %q", doc.Text)
	}
}

func TestDecodeText(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{"utf8", []byte("naïve café"), "naïve café"},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...), "hello"},
		{"utf16le bom", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi"},
		{"utf16be bom", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi"},
		{"windows-1252", []byte{'c', 'a', 'f', 0xE9, ' ', 0x93, 'q', 0x94}, "café “q”"},
	}
	for _, tc := range cases {
		got, err := DecodeText(tc.in)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestFromMarkdown(t *testing.T) {
	src := []byte("# Photosynthesis\n\nPlants *make* food from **light**.\nThey need water.\n\n- roots\n- leaves\n\n![diagram](d.png)\n")
	doc := FromMarkdown(src)
	if doc.Title != "Photosynthesis" {
		t.Fatalf("title = %q", doc.Title)
	}
	for _, want := range []string{"Plants make food from light. They need water.", "roots", "leaves"} {
		if !strings.Contains(doc.Text, want) {
			t.Fatalf("missing %q in %q", want, doc.Text)
		}
	}
	if strings.ContainsAny(doc.Text, "*#!") {
		t.Fatalf("markup left in %q", doc.Text)
	}
	if doc.Kind != KindMarkdown {
		t.Fatalf("kind = %q", doc.Kind)
	}
}

func TestForName_Unsupported(t *testing.T) {
	for _, name := range []string{"lesson.docx", "lesson.doc", "scan.png", "noext"} {
		if _, err := ForName(name); !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("%s: want ErrUnsupportedType, got %v", name, err)
		}
	}
	if _, err := ForName("Notes.TXT"); err != nil {
		t.Fatalf("extension match should ignore case: %v", err)
	}
}

func TestFromBytes_TooLarge(t *testing.T) {
	big := make([]byte, budget.MaxUploadBytes+1)
	if _, err := FromBytes("a.txt", big); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("want ErrFileTooLarge, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "lesson.txt")
	if err := os.WriteFile(p, []byte("  Water boils at 100 degrees.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Text != "Water boils at 100 degrees." || doc.Kind != KindText {
		t.Fatalf("unexpected doc: %+v", doc)
	}
	if _, err := Load(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFromPDF_Pages(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "lesson.pdf"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := "Plants need water to grow. Roots take water from the soil.\n\nLeaves use sunlight to make food."
	if doc.Text != want || doc.Kind != KindPDF {
		t.Fatalf("unexpected doc %q (%s)", doc.Text, doc.Kind)
	}
}

func TestFromPDF_NoTextLayer(t *testing.T) {
	b, err := os.ReadFile(filepath.Join("testdata", "blank.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := FromBytes("scan.pdf", b); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("want ErrUnsupportedType, got %v", err)
	}
}

func TestFromPDF_Malformed(t *testing.T) {
	_, err := FromBytes("broken.pdf", []byte("%PDF-1.4 truncated"))
	if err == nil || errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("want a read error, got %v", err)
	}
}
