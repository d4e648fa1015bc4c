package kbsite

import "context"

// ExtractResult holds the main content of a synced page.
type ExtractResult struct {
	Title       string
	ContentHTML string
}

// ContentExtractor separates a page's main content from its boilerplate.
type ContentExtractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert expects clean HTML such as ExtractResult.ContentHTML.
	Convert(html string) (string, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
