package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/sitemapper/sitemapper"
)

// Ensure SitemapService implements sitemapper.SitemapService.
var _ sitemapper.SitemapService = (*SitemapService)(nil)

// SitemapService discovers the URLs a site already publishes in its
// sitemaps. It is used to pre-seed the crawl frontier; the crawler still
// verifies every URL by fetching it.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all URLs from the site's published sitemaps: the
// Sitemap directives in robots.txt first, falling back to /sitemap.xml.
// Sitemap indexes are resolved recursively. Returns an empty slice if the
// site publishes nothing.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitemapper.Errorf(sitemapper.EINVALID, "invalid base URL %q", baseURL)
	}

	sitemapURLs := s.findSitemapURLs(ctx, base)
	if len(sitemapURLs) == 0 {
		return []string{}, nil
	}

	var all []string
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	for _, sitemapURL := range sitemapURLs {
		urls, err := s.walkSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if !seenURLs[u] {
				seenURLs[u] = true
				all = append(all, u)
			}
		}
	}
	return all, nil
}

// findSitemapURLs reads Sitemap directives from robots.txt, falling back
// to the conventional /sitemap.xml location.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) []string {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps := s.sitemapsFromRobots(ctx, robotsURL.String()); len(sitemaps) > 0 {
		return sitemaps
	}

	fallback := base.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	if s.exists(ctx, fallback.String()) {
		return []string{fallback.String()}
	}
	return nil
}

// sitemapsFromRobots extracts Sitemap: directive values from robots.txt.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, robotsURL string) []string {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			if v := strings.TrimSpace(line[len("sitemap:"):]); v != "" {
				sitemaps = append(sitemaps, v)
			}
		}
	}
	return sitemaps
}

// walkSitemap fetches and parses one sitemap document, recursing through
// sitemapindex files and collecting urlset locations.
func (s *SitemapService) walkSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parse sitemap XML at %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var all []string
		for _, child := range locValues(root, "sitemap") {
			urls, err := s.walkSitemap(ctx, child, seen)
			if err != nil {
				return nil, err
			}
			all = append(all, urls...)
		}
		return all, nil
	}

	return locValues(root, "url"), nil
}

// locValues returns the trimmed <loc> text of every <tag> child of root.
func locValues(root *etree.Element, tag string) []string {
	var values []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// get fetches a URL, returning the body for 200 responses.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

// exists checks whether a URL answers 200 to a HEAD request.
func (s *SitemapService) exists(ctx context.Context, targetURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
