// Package sitemapper generates XML sitemaps by crawling a single web site.
// Starting from a seed URL, it discovers same-domain pages by following
// hyperlinks, respects robots.txt exclusion rules, and serializes every
// page reached (with its last-modification time) into the standard
// urlset/sitemapindex XML file pair.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., goquery/, robotstxt/,
// crawl/, fs/).
package sitemapper
