package mock

import "github.com/sitemapper/sitemapper"

var _ sitemapper.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy is a mock implementation of sitemapper.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn func(url string) bool
}

func (p *RobotsPolicy) Allowed(url string) bool {
	return p.AllowedFn(url)
}
