package sitemapper

import "context"

// Frontier is the shared crawl state: a queue of pending URLs plus the set
// of all URLs ever enqueued. Every URL passed to a Frontier must already
// be canonical (see crawl.Normalize).
type Frontier interface {
	// EnqueueIfNew atomically tests membership in the seen set and, if the
	// URL is new, inserts it into both the seen set and the pending queue.
	// It returns true only for the call that scheduled the URL; under
	// concurrent discovery of the same URL exactly one caller wins.
	EnqueueIfNew(url string) bool

	// Dequeue removes and returns the next pending URL.
	// The bool result is false if nothing is pending right now. Drain
	// detection belongs to the coordinator; the frontier only reports
	// instantaneous emptiness.
	Dequeue() (string, bool)

	// Len returns the number of pending URLs.
	Len() int

	// Seen reports whether the URL has ever been enqueued.
	Seen(url string) bool
}

// DomainLimiter provides per-host politeness rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
