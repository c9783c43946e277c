// Package http provides the HTTP implementations of the sitemapper
// network interfaces: the page fetcher and published-sitemap discovery.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sitemapper/sitemapper"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout bounds a single page fetch.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent identifies the crawler to servers and in robots.txt
// group matching.
const DefaultUserAgent = "sitemapper/1.0"

// maxBodySize caps how much of a response body is read (16 MiB).
const maxBodySize = 16 << 20

// Ensure Fetcher implements sitemapper.Fetcher at compile time.
var _ sitemapper.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page bodies using plain HTTP requests. It follows
// redirects and reports the final URL so pages are recorded under their
// resolved location.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-fetch timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of the given URL. Non-2xx statuses are errors;
// the caller treats any error as "abandon this URL".
func (f *Fetcher) Fetch(ctx context.Context, url string) (*sitemapper.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	// Decode legacy charsets to UTF-8 where the Content-Type names one;
	// bodies with unknown encodings are read raw.
	var reader io.Reader = resp.Body
	if decoded, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type")); err == nil {
		reader = decoded
	}

	body, err := io.ReadAll(io.LimitReader(reader, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &sitemapper.FetchResult{
		FinalURL:     resp.Request.URL.String(),
		StatusCode:   resp.StatusCode,
		Body:         body,
		LastModified: lastModified(resp),
	}, nil
}

// Close releases resources. A no-op for the plain HTTP client.
func (f *Fetcher) Close() error {
	return nil
}

// lastModified extracts the page's modification time from the
// Last-Modified header, falling back to Date and then to the current
// time. Non-conforming header values fail soft to the fallback.
func lastModified(resp *http.Response) time.Time {
	for _, name := range []string{"Last-Modified", "Date"} {
		if v := resp.Header.Get(name); v != "" {
			if t, err := http.ParseTime(v); err == nil {
				return t
			}
		}
	}
	return time.Now()
}
