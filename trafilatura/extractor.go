// Package trafilatura extracts the main content of synced pages using
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/TheOne1006/kbsite"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Name identifies this extractor in configuration.
const Name = "trafilatura"

// Ensure Extractor implements kbsite.ContentExtractor at compile time.
var _ kbsite.ContentExtractor = (*Extractor)(nil)

// Extractor separates article content from page chrome.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Fallback extractors are enabled
// since documentation pages often defeat the main heuristics.
func NewExtractor() *Extractor {
	return &Extractor{opts: trafilatura.Options{EnableFallback: true}}
}

// Extract returns the title and main content of a page.
// Returns EINVALID for empty input.
func (e *Extractor) Extract(rawHTML string) (*kbsite.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, kbsite.Errorf(kbsite.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if result.ContentNode != nil {
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
	}

	return &kbsite.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: buf.String(),
	}, nil
}
