package mock

import (
	"context"

	"github.com/TheOne1006/kbsite"
)

var _ kbsite.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of kbsite.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*kbsite.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*kbsite.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ kbsite.Converter = (*Converter)(nil)

// Converter is a mock implementation of kbsite.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ kbsite.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of kbsite.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (t *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return t.CountTokensFn(ctx, text)
}
