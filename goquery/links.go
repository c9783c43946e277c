// Package goquery extracts anchor links from page bodies using
// PuerkitoBio/goquery.
package goquery

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitemapper/sitemapper"
)

// Compile-time interface verification.
var _ sitemapper.LinkExtractor = (*Extractor)(nil)

// Extractor scans response bodies for anchor-tag href attributes.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks returns the raw href values of all anchors in body, in
// document order. The hrefs are returned as written; resolving them
// against the page URL is the caller's concern. Binary or truncated
// bodies simply tokenize to nothing and yield zero links.
func (e *Extractor) ExtractLinks(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			links = append(links, href)
		}
	})
	return links, nil
}
