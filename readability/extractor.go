// Package readability extracts the main content of synced pages using
// go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/TheOne1006/kbsite"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// Name identifies this extractor in configuration.
const Name = "readability"

// Ensure Extractor implements kbsite.ContentExtractor at compile time.
var _ kbsite.ContentExtractor = (*Extractor)(nil)

// Extractor separates article content from page chrome.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title and main content of a page. Relative links in
// the content resolve against the page's <base> tag when present.
// Returns EINVALID for empty input.
func (e *Extractor) Extract(rawHTML string) (*kbsite.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, kbsite.Errorf(kbsite.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), baseURL(rawHTML))
	if err != nil {
		return nil, err
	}

	return &kbsite.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}

// baseURL returns the href of the page's <base> tag, or nil.
func baseURL(rawHTML string) *url.URL {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}
	href, ok := doc.Find("head base[href]").First().Attr("href")
	if !ok {
		return nil
	}
	u, err := url.Parse(href)
	if err != nil || u.Host == "" {
		return nil
	}
	return u
}
