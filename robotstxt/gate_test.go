package robotstxt_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sitemapper/sitemapper/robotstxt"
	"github.com/stretchr/testify/assert"
)

func serveRobots(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGate_DisallowHonored(t *testing.T) {
	t.Parallel()

	srv := serveRobots(t, http.StatusOK, "User-agent: *\nDisallow: /private\n")

	g := robotstxt.NewGate(context.Background(), nil, srv.URL, "sitemapper/1.0", nil)

	assert.True(t, g.Allowed(srv.URL+"/"))
	assert.True(t, g.Allowed(srv.URL+"/public/page"))
	assert.False(t, g.Allowed(srv.URL+"/private"))
	assert.False(t, g.Allowed(srv.URL+"/private/deeper"))
	assert.False(t, g.Allowed("://not a url"))
}

func TestGate_AgentSpecificGroup(t *testing.T) {
	t.Parallel()

	srv := serveRobots(t, http.StatusOK,
		"User-agent: *\nDisallow:\n\nUser-agent: sitemapper\nDisallow: /staff\n")

	g := robotstxt.NewGate(context.Background(), nil, srv.URL, "sitemapper/1.0", nil)

	assert.False(t, g.Allowed(srv.URL+"/staff"))
	assert.True(t, g.Allowed(srv.URL+"/docs"))
}

func TestGate_MissingRobotsAllowsAll(t *testing.T) {
	t.Parallel()

	srv := serveRobots(t, http.StatusNotFound, "not here")

	g := robotstxt.NewGate(context.Background(), nil, srv.URL, "sitemapper/1.0", nil)

	assert.True(t, g.Allowed(srv.URL+"/anything"))
	assert.True(t, g.Allowed(srv.URL+"/private"))
}

func TestGate_UnreachableHostAllowsAll(t *testing.T) {
	t.Parallel()

	srv := serveRobots(t, http.StatusOK, "User-agent: *\nDisallow: /\n")
	origin := srv.URL
	srv.Close()

	g := robotstxt.NewGate(context.Background(), nil, origin, "sitemapper/1.0", nil)

	assert.True(t, g.Allowed(origin+"/anything"))
}

func TestGate_QueryStringMatching(t *testing.T) {
	t.Parallel()

	srv := serveRobots(t, http.StatusOK, "User-agent: *\nDisallow: /search?\n")

	g := robotstxt.NewGate(context.Background(), nil, srv.URL, "sitemapper/1.0", nil)

	assert.False(t, g.Allowed(srv.URL+"/search?q=anything"))
	assert.True(t, g.Allowed(srv.URL+"/search"))
}

func TestGate_AllowAll(t *testing.T) {
	t.Parallel()

	g := robotstxt.AllowAll()

	assert.True(t, g.Allowed("https://example.com/private"))
	assert.True(t, g.Allowed("https://example.com/anything?x=1"))
}
