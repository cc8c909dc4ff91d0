// Package fetch downloads lesson pages given as an http(s) URL instead of a
// local file.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/easyread/internal/budget"
	"github.com/hyperifyio/easyread/internal/cache"
	"github.com/hyperifyio/easyread/internal/robots"
)

// ErrUnsupportedContent is returned for responses that are not HTML,
// Markdown, PDF or plain text.
var ErrUnsupportedContent = errors.New("unsupported content type")

// ErrDisallowed is returned when the site's robots.txt forbids the page.
var ErrDisallowed = errors.New("disallowed by robots.txt")

// Page is a downloaded document.
type Page struct {
	URL         string
	ContentType string
	Body        []byte
}

// Client wraps http.Client with bounded retries, a redirect cap and an
// optional conditional-GET cache.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts int
	// RedirectMaxHops caps redirect following. Zero means 5.
	RedirectMaxHops int
	Cache           *cache.Store
	// Robots, when set, is consulted before every download.
	Robots *robots.Checker
	// Sleep is used between attempts; nil means time.Sleep.
	Sleep func(time.Duration)
}

type cachedPage struct {
	ContentType  string `json:"content_type"`
	ETag         string `json:"etag,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
	Body         []byte `json:"body"`
}

// IsURL reports whether s should be fetched rather than opened as a file.
func IsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	return err == nil && isHTTPScheme(u) && u.Host != ""
}

// Get downloads rawURL, retrying 5xx responses and timeouts.
func (c *Client) Get(ctx context.Context, rawURL string) (Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !isHTTPScheme(u) {
		return Page{}, fmt.Errorf("unsupported URL: %q", rawURL)
	}
	if c.Robots != nil {
		ok, err := c.Robots.Allowed(ctx, u.String())
		if err != nil {
			return Page{}, err
		}
		if !ok {
			return Page{}, fmt.Errorf("%w: %s", ErrDisallowed, u.String())
		}
	}
	key := cache.KeyFrom("fetch", u.String())
	var prev cachedPage
	havePrev := false
	if c.Cache != nil {
		havePrev, _ = c.Cache.GetJSON(ctx, key, &prev)
	}

	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		page, status, meta, err := c.tryOnce(ctx, u.String(), prev, havePrev)
		if err == nil {
			if status == http.StatusNotModified {
				log.Debug().Str("url", u.String()).Msg("page not modified; using cache")
				return Page{URL: u.String(), ContentType: prev.ContentType, Body: prev.Body}, nil
			}
			if c.Cache != nil {
				meta.Body = page.Body
				if err := c.Cache.SaveJSON(ctx, key, meta); err != nil {
					log.Warn().Err(err).Msg("page cache save failed")
				}
			}
			return page, nil
		}
		lastErr = err
		if !isTransient(err) || i == attempts-1 {
			break
		}
		c.sleep(time.Duration(i+1) * 200 * time.Millisecond)
	}
	return Page{}, lastErr
}

type serverError struct{ status int }

func (e serverError) Error() string { return fmt.Sprintf("server error: %d", e.status) }

func (c *Client) tryOnce(ctx context.Context, rawURL string, prev cachedPage, havePrev bool) (Page, int, cachedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, 0, cachedPage{}, fmt.Errorf("new request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if havePrev {
		if prev.ETag != "" {
			req.Header.Set("If-None-Match", prev.ETag)
		}
		if prev.LastModified != "" {
			req.Header.Set("If-Modified-Since", prev.LastModified)
		}
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Page{}, 0, cachedPage{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return Page{}, resp.StatusCode, cachedPage{}, serverError{resp.StatusCode}
	case resp.StatusCode == http.StatusNotModified && havePrev:
		return Page{}, resp.StatusCode, cachedPage{}, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Page{}, resp.StatusCode, cachedPage{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if !isAllowedContentType(ct) {
		return Page{}, resp.StatusCode, cachedPage{}, fmt.Errorf("%w: %s", ErrUnsupportedContent, ct)
	}
	// One byte over the limit lets extraction report the file as too large.
	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(budget.MaxUploadBytes)+1))
	if err != nil {
		return Page{}, resp.StatusCode, cachedPage{}, fmt.Errorf("read body: %w", err)
	}
	meta := cachedPage{ContentType: ct, ETag: resp.Header.Get("ETag"), LastModified: resp.Header.Get("Last-Modified")}
	return Page{URL: rawURL, ContentType: ct, Body: b}, resp.StatusCode, meta, nil
}

func (c *Client) httpClient() *http.Client {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	var hc http.Client
	if c.HTTPClient != nil {
		hc = *c.HTTPClient
	} else {
		hc.Timeout = 20 * time.Second
	}
	hc.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		if !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
	return &hc
}

func (c *Client) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}

func isTransient(err error) bool {
	var se serverError
	return errors.As(err, &se) || errors.Is(err, context.DeadlineExceeded)
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func isAllowedContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	for _, p := range []string{"text/html", "application/xhtml+xml", "text/plain", "text/markdown", "application/pdf"} {
		if strings.HasPrefix(ct, p) {
			return true
		}
	}
	return false
}

// FileName returns a name whose extension selects the right extractor for
// the page's content type.
func (p Page) FileName() string {
	ct := strings.ToLower(p.ContentType)
	switch {
	case strings.HasPrefix(ct, "text/markdown"):
		return "page.md"
	case strings.HasPrefix(ct, "text/plain"):
		return "page.txt"
	case strings.HasPrefix(ct, "application/pdf"):
		return "page.pdf"
	}
	return "page.html"
}
