package sitemapper

// RobotsPolicy answers fetch-permission queries derived from a site's
// robots.txt. Implementations are constructed once per crawl, never
// mutated afterwards, and therefore safe for concurrent reads from all
// workers. A missing or unparseable robots.txt yields a permissive policy.
type RobotsPolicy interface {
	Allowed(url string) bool
}
