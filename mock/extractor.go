package mock

import "github.com/sitemapper/sitemapper"

var _ sitemapper.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of sitemapper.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(body []byte) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(body []byte) ([]string, error) {
	return e.ExtractLinksFn(body)
}
