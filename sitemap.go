package sitemapper

import (
	"context"
	"time"
)

// MaxURLsPerFile is the per-file entry cap mandated by the sitemap
// protocol. Crawls that record more pages than this are split into
// numbered part files plus an index file.
// https://www.sitemaps.org/protocol.html
const MaxURLsPerFile = 50000

// PageRecord is one entry in the eventual sitemap output. A record is
// created exactly once per unique page and is immutable after creation.
// Pages skipped for known non-HTML extensions still get a record,
// stamped with the crawl time.
type PageRecord struct {
	// Loc is the canonical URL of the page.
	Loc string

	// LastMod is the page's last-modification time.
	LastMod time.Time

	// ContentHash is the xxhash digest of the response body.
	// Empty for pages that were never fetched.
	ContentHash string
}

// SitemapRecorder is the thread-safe, append-only record of crawled pages.
// It is owned by the crawl coordinator; workers only append and test
// membership.
type SitemapRecorder interface {
	// Record appends rec unless a record for the same location exists.
	Record(rec PageRecord)

	// Contains reports whether a record for the location exists.
	Contains(loc string) bool

	// Len returns the number of records.
	Len() int

	// Records returns the pages in discovery order.
	Records() []PageRecord

	// DuplicateContent returns the number of recorded pages whose body
	// hash had already been seen under a different location.
	DuplicateContent() int
}

// SitemapWriter serializes page records into sitemap XML files.
type SitemapWriter interface {
	// Write renders the records and returns the names of the files
	// written. A write failure is fatal to the crawl output.
	Write(records []PageRecord) ([]string, error)
}

// SitemapService discovers URLs from a site's published sitemaps.
// It first checks robots.txt for Sitemap directives, then falls back to
// /sitemap.xml; sitemap indexes are resolved recursively.
type SitemapService interface {
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
