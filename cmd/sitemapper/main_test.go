package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	main "github.com/sitemapper/sitemapper/cmd/sitemapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "sitemapper")
	assert.Contains(t, stdout.String(), "url")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_RelativeSeedRejected(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"/just/a/path"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "absolute")
}

func TestMain_Run_CrawlWritesSitemap(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><body><a href="/about">About</a><a href="/private/x">X</a></body></html>`)
		case "/about":
			fmt.Fprint(w, `<html><body><a href="/">Home</a></body></html>`)
		case "/robots.txt":
			fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{srv.URL + "/", "-o", dir, "-w", "2"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "crawled 2 pages")
	assert.Contains(t, stdout.String(), "sitemap.xml")

	data, err := os.ReadFile(filepath.Join(dir, "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<loc>"+srv.URL+"/about</loc>")
	assert.NotContains(t, string(data), "/private/x")
}
