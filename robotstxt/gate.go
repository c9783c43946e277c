// Package robotstxt adapts github.com/temoto/robotstxt as the crawl's
// fetch-permission gate.
package robotstxt

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sitemapper/sitemapper"
	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

// fetchTimeout bounds the one-time robots.txt fetch.
const fetchTimeout = 10 * time.Second

// maxRobotsSize caps how much of robots.txt is read (1 MiB).
const maxRobotsSize = 1 << 20

var _ sitemapper.RobotsPolicy = (*Gate)(nil)

// Gate answers robots.txt permission queries for a single origin. It is
// built once per crawl and never mutated, so concurrent reads from all
// workers need no locking. A nil group means everything is allowed.
type Gate struct {
	group *robotstxt.Group
}

// AllowAll returns a permissive Gate.
func AllowAll() *Gate {
	return &Gate{}
}

// NewGate fetches <origin>/robots.txt and parses the rule group for the
// given user agent. Any failure to fetch or parse the file yields a
// permissive gate; a site without usable robots rules is crawled in full.
func NewGate(ctx context.Context, client *http.Client, origin string, userAgent string, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}

	base, err := url.Parse(origin)
	if err != nil {
		logger.Warn("invalid origin for robots.txt; allowing all", zap.String("origin", origin), zap.Error(err))
		return AllowAll()
	}
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		logger.Warn("robots request failed; allowing all", zap.Error(err))
		return AllowAll()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		logger.Warn("robots fetch failed; allowing all", zap.String("url", robotsURL.String()), zap.Error(err))
		return AllowAll()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		logger.Warn("robots read failed; allowing all", zap.Error(err))
		return AllowAll()
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		logger.Warn("robots parse failed; allowing all", zap.Error(err))
		return AllowAll()
	}
	return &Gate{group: data.FindGroup(userAgent)}
}

// Allowed reports whether the crawler may fetch the URL's path.
// Unparseable URLs are denied; they would never fetch cleanly anyway.
func (g *Gate) Allowed(rawURL string) bool {
	if g == nil || g.group == nil {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return g.group.Test(path)
}
