package kbsite

import (
	"context"
	"regexp"
	"slices"
)

// SitemapService reads page URLs from a site's sitemaps.
type SitemapService interface {
	// DiscoverURLs returns the pages listed by the sitemaps of the site
	// hosting baseURL, located through robots.txt or /sitemap.xml.
	// A nil filter keeps every URL.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)

	// SitemapURLs returns the pages listed in one sitemap, following
	// sitemap indexes.
	SitemapURLs(ctx context.Context, sitemapURL string) ([]string, error)
}

// URLFilter keeps URLs matching any Include pattern, or all URLs when
// Include is empty, and then drops those matching any Exclude pattern.
type URLFilter struct {
	Include []*regexp.Regexp
	Exclude []*regexp.Regexp
}

// NewPatternFilter compiles a site pattern into a filter. Like a site's
// link extraction, the pattern must match at the start of the URL.
// An empty pattern yields a nil filter, which matches everything.
func NewPatternFilter(pattern string) (*URLFilter, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	return &URLFilter{Include: []*regexp.Regexp{re}}, nil
}

// CompilePattern compiles a site pattern anchored at the start of input.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid pattern %q: %v", pattern, err)
	}
	return re, nil
}

// Match reports whether url passes f. A nil filter passes everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	matches := func(re *regexp.Regexp) bool { return re.MatchString(url) }
	if len(f.Include) > 0 && !slices.ContainsFunc(f.Include, matches) {
		return false
	}
	return !slices.ContainsFunc(f.Exclude, matches)
}
