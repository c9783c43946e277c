package mock

import (
	"context"

	"github.com/sitemapper/sitemapper"
)

var _ sitemapper.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sitemapper.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*sitemapper.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*sitemapper.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
