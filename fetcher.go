package kbsite

import "context"

// Fetcher loads the HTML of a page. Browser-backed implementations return
// the DOM after scripts have run.
type Fetcher interface {
	// Fetch returns the HTML of url. ctx bounds the whole page load.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases the loader, such as a running browser.
	Close() error
}

// DomainLimiter spaces out requests to the same host.
type DomainLimiter interface {
	// Wait blocks until a request to domain may start or ctx is done.
	Wait(ctx context.Context, domain string) error
}
