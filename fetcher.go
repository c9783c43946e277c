package sitemapper

import (
	"context"
	"time"
)

// FetchResult is returned by a Fetcher for a successfully fetched page.
type FetchResult struct {
	// FinalURL is the page URL after any transport-level redirects.
	// Pages are recorded under this URL, not the one requested.
	FinalURL string

	StatusCode int

	// Body holds the raw response bytes. It may be binary; link
	// extraction treats unparseable bodies as containing zero links.
	Body []byte

	// LastModified is taken from the Last-Modified response header,
	// falling back to the Date header and then to the fetch time.
	LastModified time.Time
}

// Fetcher retrieves page bodies over the network.
type Fetcher interface {
	// Fetch issues a timed GET for the URL. Transport errors and non-2xx
	// statuses are returned as errors; the caller decides whether they
	// are fatal (for a crawl they never are).
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases transport resources.
	Close() error
}
