package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hyperifyio/easyread/internal/budget"
)

// LibreMaxChars is the request size accepted by public LibreTranslate
// instances; longer text is truncated before sending.
const LibreMaxChars = 1000

// LibreTranslate implements Provider against a LibreTranslate server's
// /translate endpoint.
type LibreTranslate struct {
	BaseURL    string
	APIKey     string // optional
	HTTPClient *http.Client
	UserAgent  string // optional
}

func (l *LibreTranslate) Name() string { return "libretranslate" }

func (l *LibreTranslate) Translate(ctx context.Context, text string, target Language) (string, error) {
	if strings.TrimSpace(l.BaseURL) == "" {
		return "", fmt.Errorf("missing libretranslate base url")
	}
	body, err := json.Marshal(libreRequest{
		Q:      budget.Truncate(text, LibreMaxChars),
		Source: "en",
		Target: target.Code,
		Format: "text",
		APIKey: l.APIKey,
	})
	if err != nil {
		return "", err
	}
	endpoint := strings.TrimRight(l.BaseURL, "/")
	if !strings.HasSuffix(endpoint, "/translate") {
		endpoint += "/translate"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if l.UserAgent != "" {
		req.Header.Set("User-Agent", l.UserAgent)
	}
	hc := l.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("libretranslate status: %d", resp.StatusCode)
	}
	var lr libreResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", err
	}
	if lr.Error != "" {
		return "", fmt.Errorf("libretranslate: %s", lr.Error)
	}
	out := strings.TrimSpace(lr.TranslatedText)
	if out == "" {
		return "", fmt.Errorf("libretranslate returned empty text")
	}
	return out, nil
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}
