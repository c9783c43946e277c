package sitemapper

import "strings"

// ExclusionSet is a caller-supplied set of substrings. A discovered URL
// containing any member is dropped before it reaches the frontier.
// The set is immutable for the crawl's duration and shared read-only by
// all workers.
type ExclusionSet []string

// Match returns true if the URL contains any member of the set.
func (s ExclusionSet) Match(url string) bool {
	for _, sub := range s {
		if sub != "" && strings.Contains(url, sub) {
			return true
		}
	}
	return false
}
