// Package goquery implements HTML link extraction and page sanitizing
// using goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/TheOne1006/kbsite"
)

// Compile-time interface verification.
var _ kbsite.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor collects anchor targets from a page.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns the href of every anchor in document order.
// Hrefs that do not start with "http" are prefixed with the scheme and host
// of pageURL. Fragment-only hrefs are skipped. Duplicates are kept;
// filtering is left to the caller.
func (e *LinkExtractor) ExtractLinks(html string, pageURL string) ([]string, error) {
	origin, err := originOf(pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, kbsite.Errorf(kbsite.EINVALID, "failed to parse HTML: %v", err)
	}

	links := []string{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || isNonHTTPLink(href) {
			return
		}
		if !strings.HasPrefix(href, "http") {
			href = origin + href
		}
		links = append(links, href)
	})

	return links, nil
}

// originOf returns "scheme://host" of rawURL.
func originOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", kbsite.Errorf(kbsite.EINVALID, "invalid page URL: %s", rawURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// isNonHTTPLink reports whether href points at another scheme or only at a
// fragment of the current page.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
