package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	smhttp "github.com/sitemapper/sitemapper/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sitemapXMLHeader = `<?xml version="1.0" encoding="UTF-8"?>`

func TestSitemapService_DiscoverURLs_FromRobotsDirective(t *testing.T) {
	t.Parallel()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			fmt.Fprintf(w, "User-agent: *\nSitemap: %s/custom-map.xml\n", srv.URL)
		case "/custom-map.xml":
			fmt.Fprintf(w, `%s<urlset xmlns="https://www.sitemaps.org/schemas/sitemap/0.9">
				<url><loc>%s/a</loc></url>
				<url><loc>%s/b</loc></url>
			</urlset>`, sitemapXMLHeader, srv.URL, srv.URL)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := smhttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/a", srv.URL + "/b"}, urls)
}

func TestSitemapService_DiscoverURLs_FallbackLocation(t *testing.T) {
	t.Parallel()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sitemap.xml":
			fmt.Fprintf(w, `%s<urlset><url><loc>%s/only</loc></url></urlset>`, sitemapXMLHeader, srv.URL)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := smhttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/only"}, urls)
}

func TestSitemapService_DiscoverURLs_ResolvesIndexRecursively(t *testing.T) {
	t.Parallel()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sitemap.xml":
			fmt.Fprintf(w, `%s<sitemapindex>
				<sitemap><loc>%s/part1.xml</loc></sitemap>
				<sitemap><loc>%s/part2.xml</loc></sitemap>
				<sitemap><loc>%s/sitemap.xml</loc></sitemap>
			</sitemapindex>`, sitemapXMLHeader, srv.URL, srv.URL, srv.URL)
		case "/part1.xml":
			fmt.Fprintf(w, `%s<urlset><url><loc>%s/1</loc></url></urlset>`, sitemapXMLHeader, srv.URL)
		case "/part2.xml":
			fmt.Fprintf(w, `%s<urlset>
				<url><loc>%s/2</loc></url>
				<url><loc>%s/1</loc></url>
			</urlset>`, sitemapXMLHeader, srv.URL, srv.URL)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := smhttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	// Duplicates and the self-referencing index entry collapse.
	assert.Equal(t, []string{srv.URL + "/1", srv.URL + "/2"}, urls)
}

func TestSitemapService_DiscoverURLs_NothingPublished(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := smhttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestSitemapService_DiscoverURLs_MalformedXML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sitemap.xml":
			fmt.Fprint(w, "<urlset><url><loc>unterminated")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := smhttp.NewSitemapService(nil)
	_, err := s.DiscoverURLs(context.Background(), srv.URL)

	assert.Error(t, err)
}
