package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sitemapper/sitemapper/crawl"
	"github.com/sitemapper/sitemapper/fs"
	"github.com/sitemapper/sitemapper/goquery"
	smhttp "github.com/sitemapper/sitemapper/http"
	"github.com/sitemapper/sitemapper/logging"
	"github.com/sitemapper/sitemapper/robotstxt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL         string        `arg:"" required:"" help:"Seed URL to crawl"`
	Exclude     []string      `short:"x" help:"Drop discovered URLs containing any of these substrings"`
	Workers     int           `short:"w" default:"30" help:"Concurrent fetch workers"`
	Timeout     time.Duration `short:"t" default:"15s" help:"Fetch timeout per page"`
	Output      string        `short:"o" default:"." help:"Directory for the sitemap files"`
	RPS         float64       `name:"rps" default:"0" help:"Per-host request rate limit (0 disables pacing)"`
	UserAgent   string        `default:"${default_user_agent}" help:"User-Agent header sent with every request"`
	FromSitemap bool          `help:"Pre-seed the crawl from the site's published sitemaps"`
	Dev         bool          `help:"Human-readable console logging instead of JSON"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitemapper"),
		kong.Description("Crawl a site and generate its sitemap XML files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"default_user_agent": smhttp.DefaultUserAgent},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	seed, err := url.Parse(cli.URL)
	if err != nil || !seed.IsAbs() || seed.Host == "" {
		return fmt.Errorf("seed must be an absolute http(s) URL: %q", cli.URL)
	}

	logger, err := logging.New(cli.Dev)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	httpFetcher := smhttp.NewFetcher(
		smhttp.WithTimeout(cli.Timeout),
		smhttp.WithUserAgent(cli.UserAgent),
	)
	defer httpFetcher.Close()
	fetcher := logging.NewFetcher(httpFetcher, logger)

	origin := seed.Scheme + "://" + seed.Host
	gate := robotstxt.NewGate(ctx, nil, origin, cli.UserAgent, logger)

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   goquery.NewExtractor(),
		Writer:      &fs.Writer{Dir: cli.Output},
		Robots:      gate,
		RateLimiter: crawl.NewDomainLimiter(cli.RPS),
		Excluded:    cli.Exclude,
		Concurrency: cli.Workers,
		Logger:      logger,
	}
	if cli.FromSitemap {
		crawler.Sitemaps = logging.NewSitemapService(smhttp.NewSitemapService(nil), logger)
	}

	result, err := crawler.Run(ctx, cli.URL)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "crawled %d pages in %s (%d failed, %d duplicate bodies)\n",
		result.Pages, result.Elapsed.Round(time.Millisecond), result.Failed, result.DuplicateContent)
	for _, name := range result.Files {
		fmt.Fprintln(stdout, name)
	}
	return nil
}
