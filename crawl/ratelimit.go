package crawl

import (
	"context"
	"sync"

	"github.com/sitemapper/sitemapper"
	"golang.org/x/time/rate"
)

var _ sitemapper.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces fetches per host with token buckets. A single-site
// crawl normally touches one host, but redirects can introduce others;
// each host gets its own bucket with a burst of 1, so requests to one
// host are spaced at least 1/rps apart while other hosts are unaffected.
// A rate of zero or less disables pacing entirely, which is the default
// politeness setting.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second per host. Non-positive rps means unlimited.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	if d.rps <= 0 {
		return ctx.Err()
	}

	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
