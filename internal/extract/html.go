package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML pulls lesson text out of an HTML page. It reads <main> or
// <article> when present, otherwise <body>, and drops navigation, scripts
// and consent banners. Headings, paragraphs and list items become separate
// lines.
func FromHTML(input []byte) Document {
	root, err := html.Parse(bytes.NewReader(input))
	if err != nil || root == nil {
		return Document{Kind: KindHTML}
	}
	content := findFirst(root, "main")
	if content == nil {
		content = findFirst(root, "article")
	}
	if content == nil {
		content = findFirst(root, "body")
	}
	var b strings.Builder
	if content != nil {
		walkHTML(&b, content, false)
	}
	return Document{
		Title: strings.TrimSpace(findTitle(root)),
		Text:  normalizeWhitespace(b.String()),
		Kind:  KindHTML,
	}
}

func findTitle(n *html.Node) string {
	head := findFirst(n, "head")
	if head == nil {
		return ""
	}
	t := findFirst(head, "title")
	if t == nil || t.FirstChild == nil {
		return ""
	}
	return t.FirstChild.Data
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func walkHTML(b *strings.Builder, n *html.Node, inPre bool) {
	var name string
	if n.Type == html.ElementNode {
		if isBoilerplate(n) {
			return
		}
		name = strings.ToLower(n.Data)
		switch name {
		case "script", "style", "noscript", "nav", "footer", "aside", "iframe", "form":
			return
		case "pre", "code":
			inPre = true
		case "br", "hr", "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "tr":
			b.WriteByte('\n')
		case "td", "th":
			b.WriteByte(' ')
		}
	}
	if n.Type == html.TextNode {
		data := n.Data
		if !inPre {
			data = strings.NewReplacer("\t", " ", "\r", " ").Replace(data)
		}
		b.WriteString(data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHTML(b, c, inPre)
	}
	switch name {
	case "p", "h1", "h2", "h3", "h4", "h5", "h6":
		b.WriteString("\n\n")
	case "pre":
		b.WriteByte('\n')
	}
}

var boilerplateMarkers = []string{"cookie", "consent", "gdpr", "newsletter", "advert"}

func isBoilerplate(n *html.Node) bool {
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if key != "id" && key != "class" && key != "role" && key != "aria-label" && !strings.HasPrefix(key, "data-") {
			continue
		}
		val := strings.ToLower(attr.Val)
		for _, m := range boilerplateMarkers {
			if strings.Contains(val, m) {
				return true
			}
		}
	}
	return false
}

// normalizeWhitespace trims lines, collapses inner runs of spaces and keeps
// at most one blank line between blocks.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if len(out) == 0 || out[len(out)-1] == "" {
				continue
			}
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
