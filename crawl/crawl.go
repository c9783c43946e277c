// Package crawl provides the crawl engine for single-site sitemap
// generation: the concurrent URL frontier, the fetch worker pipeline and
// the coordinator that drives them to collective completion.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sitemapper/sitemapper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Frontier sizing for a single-site crawl.
const (
	// frontierExpectedURLs sizes the Bloom screen.
	frontierExpectedURLs = 100000
	// frontierFalsePositiveRate is acceptable because positives are
	// confirmed against the exact seen set.
	frontierFalsePositiveRate = 0.01
)

// DefaultConcurrency is the worker pool size used when none is configured.
const DefaultConcurrency = 30

// DefaultProgressInterval is how often the coordinator reports progress.
const DefaultProgressInterval = 2 * time.Second

// skipExtensions are path suffixes that never contain HTML. URLs ending
// in one are recorded without being fetched.
var skipExtensions = []string{
	".epub", ".mobi", ".docx", ".doc", ".opf",
	".7z", ".ibooks", ".cbr", ".avi", ".mkv",
	".mp4", ".jpg", ".jpeg", ".png", ".gif",
	".pdf", ".iso", ".rar", ".tar", ".tgz",
	".zip", ".dmg", ".exe",
}

// Crawler orchestrates a single-site crawl. The zero value is not usable;
// Fetcher, Extractor and Writer must be set.
type Crawler struct {
	Fetcher   sitemapper.Fetcher
	Extractor sitemapper.LinkExtractor
	Writer    sitemapper.SitemapWriter

	// Frontier holds the pending queue and seen set. Nil gets a
	// Bloom-screened in-memory frontier.
	Frontier sitemapper.Frontier

	// Recorder accumulates page records. Nil gets the in-memory recorder.
	Recorder sitemapper.SitemapRecorder

	// Robots gates discovered links. Nil allows everything.
	Robots sitemapper.RobotsPolicy

	// Sitemaps, when set, pre-seeds the frontier from the site's
	// published sitemaps before link-following starts.
	Sitemaps sitemapper.SitemapService

	// RateLimiter, when set, paces fetches per host.
	RateLimiter sitemapper.DomainLimiter

	// Excluded drops discovered URLs containing any of its substrings.
	Excluded sitemapper.ExclusionSet

	Concurrency      int
	ProgressInterval time.Duration
	Progress         ProgressFunc
	Logger           *zap.Logger
}

// Result summarizes a finished crawl.
type Result struct {
	RunID            string
	Pages            int
	Failed           int
	DuplicateContent int
	Elapsed          time.Duration
	Files            []string
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types emitted during a crawl.
const (
	ProgressStarted ProgressType = iota
	ProgressCount
	ProgressFinished
)

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type    ProgressType
	Pages   int
	Elapsed time.Duration
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// outcome is what a worker reports back per dispatched URL.
type outcome struct {
	url     string
	skipped bool
	err     error
}

// run holds the shared state of one crawl.
type run struct {
	c        *Crawler
	frontier sitemapper.Frontier
	recorder sitemapper.SitemapRecorder
	seed     string
	host     string
	logger   *zap.Logger

	// failed counts abandoned URLs; touched only by the coordinator.
	failed int
}

// Run crawls the site rooted at seed and writes the sitemap files.
// The seed must be an absolute http(s) URL. Individual fetch failures are
// never fatal; only an invalid seed, context cancellation or a sitemap
// write failure produce an error.
func (c *Crawler) Run(ctx context.Context, seed string) (*Result, error) {
	canonical, base, err := NormalizeSeed(seed)
	if err != nil {
		return nil, err
	}

	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	frontier := c.Frontier
	if frontier == nil {
		frontier = NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	}
	recorder := c.Recorder
	if recorder == nil {
		recorder = NewRecorder()
	}

	r := &run{
		c:        c,
		frontier: frontier,
		recorder: recorder,
		seed:     canonical,
		host:     base.Host,
		logger:   logger,
	}
	r.frontier.EnqueueIfNew(canonical)

	if c.Sitemaps != nil {
		r.preseed(ctx)
	}

	started := time.Now()
	if c.Progress != nil {
		c.Progress(ProgressEvent{Type: ProgressStarted})
	}
	logger.Info("crawl started", zap.String("seed", canonical))

	if err := r.drive(ctx); err != nil {
		return nil, err
	}

	files, err := c.Writer.Write(r.recorder.Records())
	if err != nil {
		return nil, fmt.Errorf("write sitemap files: %w", err)
	}

	result := &Result{
		RunID:            runID,
		Pages:            r.recorder.Len(),
		Failed:           r.failed,
		DuplicateContent: r.recorder.DuplicateContent(),
		Elapsed:          time.Since(started),
		Files:            files,
	}
	if c.Progress != nil {
		c.Progress(ProgressEvent{Type: ProgressFinished, Pages: result.Pages, Elapsed: result.Elapsed})
	}
	logger.Info("crawl finished",
		zap.Int("pages", result.Pages),
		zap.Int("failed", result.Failed),
		zap.Int("duplicate_content", result.DuplicateContent),
		zap.Duration("elapsed", result.Elapsed),
		zap.Strings("files", files),
	)
	return result, nil
}

// preseed enqueues URLs discovered from the site's published sitemaps.
// Discovery failures are not fatal; the crawl falls back to pure
// link-following.
func (r *run) preseed(ctx context.Context) {
	urls, err := r.c.Sitemaps.DiscoverURLs(ctx, r.seed)
	if err != nil {
		r.logger.Warn("sitemap discovery failed; crawling from seed only", zap.Error(err))
		return
	}
	base := mustBase(r.seed)
	seeded := 0
	for _, u := range urls {
		if r.admit(u, base) {
			seeded++
		}
	}
	r.logger.Info("frontier pre-seeded from published sitemaps",
		zap.Int("discovered", len(urls)), zap.Int("enqueued", seeded))
}

// drive dispatches frontier URLs to a fixed worker pool until the
// frontier stays empty and no fetch is in flight. Drain detection lives
// here, in the coordinator: the pending counter tracks dispatched URLs
// whose outcome has not come back yet.
func (r *run) drive(ctx context.Context) error {
	concurrency := r.c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	workCh := make(chan string, concurrency)
	resultCh := make(chan outcome)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			for target := range workCh {
				out := r.process(gctx, target)
				select {
				case resultCh <- out:
				case <-gctx.Done():
					return nil
				}
			}
			return nil
		})
	}

	interval := r.c.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	started := time.Now()

	pending := 0
	var next string
	hasNext := false
	if target, ok := r.frontier.Dequeue(); ok {
		next, hasNext = target, true
	}

	for (hasNext || pending > 0) && ctx.Err() == nil {
		if hasNext {
			select {
			case <-ctx.Done():
			case workCh <- next:
				pending++
				hasNext = false
			case out := <-resultCh:
				pending--
				r.observe(out)
			case <-ticker.C:
				r.reportProgress(started)
			}
		} else {
			select {
			case <-ctx.Done():
			case out := <-resultCh:
				pending--
				r.observe(out)
			case <-ticker.C:
				r.reportProgress(started)
			}
		}

		if !hasNext {
			if target, ok := r.frontier.Dequeue(); ok {
				next, hasNext = target, true
			}
		}
	}

	close(workCh)
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("crawl canceled: %w", err)
	}
	return nil
}

// observe folds a worker outcome into the run counters.
func (r *run) observe(out outcome) {
	switch {
	case out.err != nil:
		r.failed++
		r.logger.Debug("page abandoned", zap.String("url", out.url), zap.Error(out.err))
	case out.skipped:
		r.logger.Debug("non-HTML page recorded without fetch", zap.String("url", out.url))
	}
}

func (r *run) reportProgress(started time.Time) {
	pages := r.recorder.Len()
	r.logger.Info("crawl progress", zap.Int("pages", pages))
	if r.c.Progress != nil {
		r.c.Progress(ProgressEvent{Type: ProgressCount, Pages: pages, Elapsed: time.Since(started)})
	}
}

// process runs the fetch pipeline for one canonical URL: fetch, record,
// extract, filter, enqueue. Failures abandon the URL and nothing else.
func (r *run) process(ctx context.Context, target string) outcome {
	parsed, err := url.Parse(target)
	if err != nil {
		return outcome{url: target, err: fmt.Errorf("parse target: %w", err)}
	}

	// Known non-HTML content is recorded as present without a fetch.
	if hasSkipExtension(parsed.Path) {
		r.recorder.Record(sitemapper.PageRecord{Loc: target, LastMod: time.Now()})
		return outcome{url: target, skipped: true}
	}

	if r.c.RateLimiter != nil {
		if err := r.c.RateLimiter.Wait(ctx, parsed.Host); err != nil {
			return outcome{url: target, err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	res, err := r.c.Fetcher.Fetch(ctx, target)
	if err != nil {
		return outcome{url: target, err: err}
	}

	// Record under the final post-redirect location.
	loc := target
	finalBase := parsed
	if canonical, err := Normalize(res.FinalURL, parsed); err == nil {
		loc = canonical
		if b, err := url.Parse(canonical); err == nil {
			finalBase = b
		}
	}
	r.recorder.Record(sitemapper.PageRecord{
		Loc:         loc,
		LastMod:     res.LastModified,
		ContentHash: BodyHash(res.Body),
	})

	links, err := r.c.Extractor.ExtractLinks(res.Body)
	if err != nil {
		// Unparseable bodies yield zero links, not a failed page.
		return outcome{url: target}
	}
	for _, raw := range links {
		r.admit(raw, finalBase)
	}
	return outcome{url: target}
}

// admit applies the discovery filter chain to one raw link and, if every
// rule passes, schedules it. Rules short-circuit in order: normalize,
// already recorded, foreign host, seed itself, exclusion substrings,
// robots, already seen.
func (r *run) admit(raw string, base *url.URL) bool {
	canonical, err := Normalize(raw, base)
	if err != nil {
		return false
	}
	if r.recorder.Contains(canonical) {
		return false
	}
	if hostOf(canonical) != r.host {
		return false
	}
	if canonical == r.seed {
		return false
	}
	if r.c.Excluded.Match(canonical) {
		return false
	}
	if r.c.Robots != nil && !r.c.Robots.Allowed(canonical) {
		return false
	}
	return r.frontier.EnqueueIfNew(canonical)
}

// hasSkipExtension reports whether the path names a known non-HTML format.
func hasSkipExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range skipExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// hostOf returns the host of a canonical URL, or "" if it will not parse.
func hostOf(canonical string) string {
	u, err := url.Parse(canonical)
	if err != nil {
		return ""
	}
	return u.Host
}

// mustBase parses a canonical URL already validated by NormalizeSeed.
func mustBase(canonical string) *url.URL {
	u, err := url.Parse(canonical)
	if err != nil {
		panic(fmt.Sprintf("canonical URL failed to parse: %v", err))
	}
	return u
}
