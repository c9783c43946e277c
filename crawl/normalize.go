package crawl

import (
	"net/url"
	"strings"

	"github.com/sitemapper/sitemapper"
)

// rejectedSchemes prefix link forms that can never name a crawlable page.
var rejectedSchemes = []string{"mailto:", "tel:", "javascript:", "data:"}

// Normalize turns a raw discovered link into a canonical absolute URL
// comparable by byte equality. The link is resolved against base
// (protocol-relative, root-relative, fragment-only and relative forms all
// follow RFC 3986 reference resolution, which also resolves "." and ".."
// segments lexically without popping past the root). The fragment is
// stripped, the scheme and host are lowercased, default ports are
// dropped, an empty path becomes the explicit root "/", and the path is
// uniformly percent-encoded so that non-ASCII bytes never appear in the
// canonical form.
//
// Normalization is idempotent: feeding a canonical URL back in returns it
// unchanged.
func Normalize(rawLink string, base *url.URL) (string, error) {
	link := strings.TrimSpace(rawLink)
	if link == "" {
		return "", sitemapper.Errorf(sitemapper.EINVALID, "empty link")
	}

	lower := strings.ToLower(link)
	for _, scheme := range rejectedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return "", sitemapper.Errorf(sitemapper.EINVALID, "unsupported scheme in %q", rawLink)
		}
	}

	ref, err := url.Parse(link)
	if err != nil {
		return "", sitemapper.Errorf(sitemapper.EINVALID, "unparseable link %q", rawLink)
	}

	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", sitemapper.Errorf(sitemapper.EINVALID, "non-http scheme %q in %q", u.Scheme, rawLink)
	}
	if u.Host == "" {
		return "", sitemapper.Errorf(sitemapper.EINVALID, "no host in %q", rawLink)
	}

	// A bare authority names the site root. Give it the explicit "/" so
	// the two spellings canonicalize to one byte-identical form.
	if u.Path == "" {
		u.Path = "/"
	}

	// Two links differing only by fragment are the same page.
	u.Fragment = ""
	u.RawFragment = ""

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Scheme == "http" {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	// Clearing RawPath makes URL.String re-encode the decoded path from
	// scratch, giving every page a single canonical encoding regardless
	// of how the source document spelled it.
	u.RawPath = ""

	return u.String(), nil
}

// NormalizeSeed parses and canonicalizes a seed URL. The seed must be
// absolute with an http or https scheme. It returns the canonical string
// and the parsed base used to resolve links discovered during the crawl.
func NormalizeSeed(seed string) (string, *url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(seed))
	if err != nil {
		return "", nil, sitemapper.Errorf(sitemapper.EINVALID, "unparseable seed URL %q", seed)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return "", nil, sitemapper.Errorf(sitemapper.EINVALID, "seed URL %q must be absolute with a scheme", seed)
	}

	canonical, err := Normalize(seed, parsed)
	if err != nil {
		return "", nil, err
	}

	base, err := url.Parse(canonical)
	if err != nil {
		return "", nil, sitemapper.Errorf(sitemapper.EINVALID, "seed URL %q did not normalize cleanly", seed)
	}
	return canonical, base, nil
}
