package mock

import (
	"context"

	"github.com/sitemapper/sitemapper"
)

var _ sitemapper.SitemapWriter = (*SitemapWriter)(nil)

// SitemapWriter is a mock implementation of sitemapper.SitemapWriter.
type SitemapWriter struct {
	WriteFn func(records []sitemapper.PageRecord) ([]string, error)
}

func (w *SitemapWriter) Write(records []sitemapper.PageRecord) ([]string, error) {
	return w.WriteFn(records)
}

var _ sitemapper.SitemapRecorder = (*SitemapRecorder)(nil)

// SitemapRecorder is a mock implementation of sitemapper.SitemapRecorder.
type SitemapRecorder struct {
	RecordFn           func(rec sitemapper.PageRecord)
	ContainsFn         func(loc string) bool
	LenFn              func() int
	RecordsFn          func() []sitemapper.PageRecord
	DuplicateContentFn func() int
}

func (r *SitemapRecorder) Record(rec sitemapper.PageRecord) {
	r.RecordFn(rec)
}

func (r *SitemapRecorder) Contains(loc string) bool {
	return r.ContainsFn(loc)
}

func (r *SitemapRecorder) Len() int {
	return r.LenFn()
}

func (r *SitemapRecorder) Records() []sitemapper.PageRecord {
	return r.RecordsFn()
}

func (r *SitemapRecorder) DuplicateContent() int {
	return r.DuplicateContentFn()
}

var _ sitemapper.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of sitemapper.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}
