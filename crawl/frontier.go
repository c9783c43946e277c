package crawl

import (
	"sync"

	"github.com/sitemapper/sitemapper"
	"github.com/sitemapper/sitemapper/bloom"
)

// Compile-time interface verification.
var _ sitemapper.Frontier = (*Frontier)(nil)

// Frontier is an in-memory URL frontier with a FIFO pending queue and an
// exact seen set screened by a Bloom filter. The Bloom filter answers the
// common "definitely new" case without probing the map; positives fall
// through to the exact set, so deduplication is never probabilistic.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	screen  *bloom.Filter
	seen    map[string]struct{}
	pending []string
}

// NewFrontier creates a Frontier sized for n expected URLs with the given
// Bloom false positive rate.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		screen: bloom.NewFilter(n, fpRate),
		seen:   make(map[string]struct{}),
	}
}

// EnqueueIfNew atomically tests membership and, if the URL is new, inserts
// it into both the seen set and the pending queue. Exactly one of any
// number of concurrent calls with the same URL returns true.
func (f *Frontier) EnqueueIfNew(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.screen.Test(url) {
		// Possible Bloom false positive; confirm against the exact set.
		if _, ok := f.seen[url]; ok {
			return false
		}
	}

	f.screen.Add(url)
	f.seen[url] = struct{}{}
	f.pending = append(f.pending, url)
	return true
}

// Dequeue removes and returns the oldest pending URL.
// The bool result is false if nothing is pending.
func (f *Frontier) Dequeue() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.pending) == 0 {
		return "", false
	}
	url := f.pending[0]
	f.pending = f.pending[1:]
	return url, true
}

// Len returns the number of pending URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Seen reports whether the URL has ever been enqueued. Dequeuing does not
// clear it.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.screen.Test(url) {
		return false
	}
	_, ok := f.seen[url]
	return ok
}
