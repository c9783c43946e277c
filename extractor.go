package sitemapper

// LinkExtractor scans a fetched response body for anchor-tag href values.
// The hrefs are returned as written in the document; resolving them into
// canonical absolute URLs is the caller's concern.
type LinkExtractor interface {
	// ExtractLinks returns the raw href attributes of all anchors in body.
	// Binary or otherwise unparseable bodies yield zero links, not an error.
	ExtractLinks(body []byte) ([]string, error)
}
