package report

import (
	"strings"

	"github.com/google/uuid"
)

// Footer records how a report was produced.
type Footer struct {
	RunID   string
	Engine  string
	Level   string
	Target  string
	Version string
}

// NewFooter stamps a fresh random run id.
func NewFooter(engine, level, version string) Footer {
	return Footer{RunID: uuid.NewString(), Engine: engine, Level: level, Version: version}
}

// AppendFooter adds a single metadata line after a horizontal rule.
// Empty fields are omitted.
func AppendFooter(markdown string, f Footer) string {
	fields := []struct{ k, v string }{
		{"run", f.RunID},
		{"engine", f.Engine},
		{"level", f.Level},
		{"target", f.Target},
		{"version", f.Version},
	}
	parts := make([]string, 0, len(fields))
	for _, kv := range fields {
		if v := strings.TrimSpace(kv.v); v != "" {
			parts = append(parts, kv.k+"="+v)
		}
	}
	var b strings.Builder
	b.WriteString(strings.TrimRight(markdown, "\n"))
	b.WriteString("\n\n---\n")
	b.WriteString("Generated by easyread: ")
	b.WriteString(strings.Join(parts, "; "))
	b.WriteString("\n")
	return b.String()
}
