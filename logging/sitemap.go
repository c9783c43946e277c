package logging

import (
	"context"
	"time"

	"github.com/sitemapper/sitemapper"
	"go.uber.org/zap"
)

// Ensure SitemapService implements sitemapper.SitemapService.
var _ sitemapper.SitemapService = (*SitemapService)(nil)

// SitemapService wraps a sitemapper.SitemapService with discovery logging.
type SitemapService struct {
	next   sitemapper.SitemapService
	logger *zap.Logger
}

// NewSitemapService creates a logging decorator around next.
func NewSitemapService(next sitemapper.SitemapService, logger *zap.Logger) *SitemapService {
	return &SitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			zap.String("url", baseURL),
			zap.Int("count", len(urls)),
			zap.Duration("duration", time.Since(begin)),
			zap.Error(err),
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL)
}
