package crawl

import (
	"context"
	"time"

	"github.com/TheOne1006/kbsite"
)

// Compile-time interface verification.
var _ kbsite.EndpointIndexer = (*Indexer)(nil)

// Indexer records endpoint statistics for synced pages: title, token
// count and the number of markdown sections the page splits into.
type Indexer struct {
	Endpoints    kbsite.EndpointService
	Extractor    kbsite.ContentExtractor
	Converter    kbsite.Converter
	TokenCounter kbsite.TokenCounter
	Now          func() time.Time
}

// Index derives statistics for html and upserts the endpoint e.
// TokenCounter is optional; without it Tokens stays zero.
func (ix *Indexer) Index(ctx context.Context, e *kbsite.Endpoint, html string) error {
	extracted, err := ix.Extractor.Extract(html)
	if err != nil {
		return err
	}

	markdown, err := ix.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return err
	}

	e.Title = extracted.Title
	e.Splitter = kbsite.SplitterName
	e.DocCount = max(len(kbsite.SplitSections(markdown)), 1)
	e.ContentHash = ComputeHash(html)
	if e.Size == 0 {
		e.Size = len(html)
	}

	if ix.TokenCounter != nil {
		tokens, err := ix.TokenCounter.CountTokens(ctx, markdown)
		if err != nil {
			return err
		}
		e.Tokens = tokens
	}

	if ix.Now != nil {
		e.FetchedAt = ix.Now().UTC()
	} else {
		e.FetchedAt = time.Now().UTC()
	}

	return ix.Endpoints.UpsertEndpoint(ctx, e)
}
