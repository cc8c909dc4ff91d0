// Package robots decides whether a page may be fetched according to the
// site's robots.txt. Parsed files are kept in the shared cache store for a
// day.
package robots

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/easyread/internal/cache"
)

// maxRobotsBytes bounds how much of a robots.txt is read.
const maxRobotsBytes = 512 * 1024

// Rules is a parsed robots.txt.
type Rules struct {
	Groups []Group `json:"groups"`
}

// Group is one User-agent block.
type Group struct {
	Agents   []string `json:"agents"`
	Allow    []string `json:"allow,omitempty"`
	Disallow []string `json:"disallow,omitempty"`
}

// Checker fetches and evaluates robots.txt files.
type Checker struct {
	HTTPClient *http.Client
	UserAgent  string
	Cache      *cache.Store
	// TTL is how long a cached file is trusted. Zero means 24h.
	TTL time.Duration

	now func() time.Time
}

type cachedRules struct {
	FetchedAt time.Time `json:"fetched_at"`
	Rules     Rules     `json:"rules"`
}

// Allowed reports whether pageURL may be fetched. A missing or unreachable
// robots.txt allows everything.
func (c *Checker) Allowed(ctx context.Context, pageURL string) (bool, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false, fmt.Errorf("parse url: %w", err)
	}
	rules, err := c.rulesFor(ctx, u)
	if err != nil {
		log.Debug().Err(err).Str("host", u.Host).Msg("robots.txt unavailable; allowing")
		return true, nil
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return rules.IsAllowed(c.UserAgent, path), nil
}

func (c *Checker) rulesFor(ctx context.Context, page *url.URL) (Rules, error) {
	robotsURL := (&url.URL{Scheme: page.Scheme, Host: page.Host, Path: "/robots.txt"}).String()
	key := cache.KeyFrom("robots", robotsURL)
	if c.Cache != nil {
		var cached cachedRules
		if ok, _ := c.Cache.GetJSON(ctx, key, &cached); ok && c.clock().Sub(cached.FetchedAt) < c.ttl() {
			return cached.Rules, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return Rules{}, fmt.Errorf("new request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Rules{}, err
	}
	defer resp.Body.Close()

	var rules Rules
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBytes))
		if err != nil {
			return Rules{}, fmt.Errorf("read robots: %w", err)
		}
		rules = Parse(string(data))
	case resp.StatusCode >= 400 && resp.StatusCode <= 499:
		// No file: nothing is restricted.
	default:
		return Rules{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if c.Cache != nil {
		if err := c.Cache.SaveJSON(ctx, key, cachedRules{FetchedAt: c.clock(), Rules: rules}); err != nil {
			log.Warn().Err(err).Msg("robots cache save failed")
		}
	}
	return rules, nil
}

func (c *Checker) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

func (c *Checker) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return 24 * time.Hour
}

// Parse reads robots.txt text. Unknown directives are ignored.
func Parse(text string) Rules {
	sc := bufio.NewScanner(strings.NewReader(text))
	var groups []Group
	var cur Group
	flush := func() {
		if len(cur.Agents) > 0 {
			groups = append(groups, cur)
		}
		cur = Group{}
	}
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "user-agent", "useragent":
			// Consecutive agent lines share one group.
			if len(cur.Allow) > 0 || len(cur.Disallow) > 0 {
				flush()
			}
			cur.Agents = append(cur.Agents, strings.ToLower(val))
		case "allow":
			cur.Allow = append(cur.Allow, val)
		case "disallow":
			cur.Disallow = append(cur.Disallow, val)
		}
	}
	flush()
	return Rules{Groups: groups}
}

// IsAllowed evaluates path (with optional query) for userAgent. The group
// with the longest agent token contained in userAgent wins, "*" being the
// weakest match. Inside it the longest matching pattern decides and Allow
// wins ties. No match means allowed.
func (r Rules) IsAllowed(userAgent, path string) bool {
	g := r.group(userAgent)
	if g == nil {
		return true
	}
	best := -1
	allowed := true
	consider := func(patterns []string, allow bool) {
		for _, p := range patterns {
			if p == "" || !matches(p, path) {
				continue
			}
			score := len(strings.ReplaceAll(strings.TrimSuffix(p, "$"), "*", ""))
			if score > best || (score == best && allow) {
				best = score
				allowed = allow
			}
		}
	}
	consider(g.Disallow, false)
	consider(g.Allow, true)
	return allowed
}

func (r Rules) group(userAgent string) *Group {
	ua := strings.ToLower(userAgent)
	var best *Group
	bestScore := -1
	for i := range r.Groups {
		for _, a := range r.Groups[i].Agents {
			score := -1
			switch {
			case a == "*":
				score = 0
			case a != "" && strings.Contains(ua, a):
				score = len(a)
			}
			if score > bestScore {
				bestScore = score
				best = &r.Groups[i]
			}
		}
	}
	return best
}

// matches supports '*' wildcards and a trailing '$' end anchor; patterns
// are anchored at the start of the path.
func matches(pattern, path string) bool {
	anchored := strings.HasSuffix(pattern, "$")
	parts := strings.Split(strings.TrimSuffix(pattern, "$"), "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	expr := "^" + strings.Join(parts, ".*")
	if anchored {
		expr += "$"
	}
	return regexp.MustCompile(expr).MatchString(path)
}
