package crawl

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/sitemapper/sitemapper"
)

var _ sitemapper.SitemapRecorder = (*Recorder)(nil)

// Recorder accumulates page records in discovery order. Appends and
// membership checks share one mutex so that two workers racing to record
// the same location produce exactly one record.
type Recorder struct {
	mu      sync.Mutex
	records []sitemapper.PageRecord
	locs    map[string]struct{}
	hashes  map[string]struct{}
	dupes   int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		locs:   make(map[string]struct{}),
		hashes: make(map[string]struct{}),
	}
}

// Record appends rec unless a record for the same location already
// exists. Redirects can land two requested URLs on one final location;
// only the first arrival is kept.
func (r *Recorder) Record(rec sitemapper.PageRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.locs[rec.Loc]; ok {
		return
	}
	r.locs[rec.Loc] = struct{}{}
	r.records = append(r.records, rec)

	if rec.ContentHash != "" {
		if _, ok := r.hashes[rec.ContentHash]; ok {
			r.dupes++
		} else {
			r.hashes[rec.ContentHash] = struct{}{}
		}
	}
}

// Contains reports whether a record for the location exists.
func (r *Recorder) Contains(loc string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.locs[loc]
	return ok
}

// Len returns the number of records.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Records returns a copy of the records in discovery order.
func (r *Recorder) Records() []sitemapper.PageRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sitemapper.PageRecord, len(r.records))
	copy(out, r.records)
	return out
}

// DuplicateContent returns the number of recorded pages whose body hash
// had already been seen under a different location.
func (r *Recorder) DuplicateContent() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dupes
}

// BodyHash computes the content hash recorded for fetched pages.
func BodyHash(body []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(body))
}
