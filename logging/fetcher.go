package logging

import (
	"context"
	"time"

	"github.com/sitemapper/sitemapper"
	"go.uber.org/zap"
)

// Ensure Fetcher implements sitemapper.Fetcher.
var _ sitemapper.Fetcher = (*Fetcher)(nil)

// Fetcher wraps a sitemapper.Fetcher with per-request debug logging.
type Fetcher struct {
	next   sitemapper.Fetcher
	logger *zap.Logger
}

// NewFetcher creates a logging decorator around next.
func NewFetcher(next sitemapper.Fetcher, logger *zap.Logger) *Fetcher {
	return &Fetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*sitemapper.FetchResult, error) {
	begin := time.Now()
	res, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Debug("fetch failed",
			zap.String("url", url),
			zap.Duration("duration", time.Since(begin)),
			zap.Error(err),
		)
		return nil, err
	}
	f.logger.Debug("fetch",
		zap.String("url", url),
		zap.String("final_url", res.FinalURL),
		zap.Int("status", res.StatusCode),
		zap.Int("bytes", len(res.Body)),
		zap.Duration("duration", time.Since(begin)),
	)
	return res, nil
}

// Close delegates to the wrapped fetcher.
func (f *Fetcher) Close() error {
	return f.next.Close()
}
