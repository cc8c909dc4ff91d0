package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"github.com/hyperifyio/easyread/internal/simplify"
)

// manifest is the JSON record written next to a report.
type manifest struct {
	RunID       string          `json:"run_id"`
	Version     string          `json:"version"`
	GeneratedAt time.Time       `json:"generated_at"`
	Mode        string          `json:"mode"`
	Engine      string          `json:"engine,omitempty"`
	Level       string          `json:"level,omitempty"`
	Target      string          `json:"target,omitempty"`
	Source      string          `json:"source_language,omitempty"`
	Input       string          `json:"input"`
	InputSHA256 string          `json:"input_sha256"`
	InputChars  int             `json:"input_chars"`
	Outputs     []string        `json:"outputs"`
	Stats       *simplify.Stats `json:"stats,omitempty"`
}

func computeSHA256Hex(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

func writeManifest(path string, m manifest) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
