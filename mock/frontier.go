package mock

import (
	"context"

	"github.com/sitemapper/sitemapper"
)

var _ sitemapper.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of sitemapper.Frontier.
type Frontier struct {
	EnqueueIfNewFn func(url string) bool
	DequeueFn      func() (string, bool)
	LenFn          func() int
	SeenFn         func(url string) bool
}

func (f *Frontier) EnqueueIfNew(url string) bool {
	return f.EnqueueIfNewFn(url)
}

func (f *Frontier) Dequeue() (string, bool) {
	return f.DequeueFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ sitemapper.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of sitemapper.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
