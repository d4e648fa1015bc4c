package kbsite

import (
	"context"
	"time"
)

// Endpoint records a page synced for a site: which loader fetched it,
// where it was written, and what the downstream splitter derived from it.
// Endpoints act as an index of already-fetched pages and persist until
// explicitly deleted.
type Endpoint struct {
	ID          string    `json:"id"`
	SiteID      int64     `json:"site_id"`
	URL         string    `json:"url"`
	FilePath    string    `json:"file_path"`
	Loader      string    `json:"loader"`
	Splitter    string    `json:"splitter"`
	Title       string    `json:"title"`
	Size        int       `json:"size"`
	Tokens      int       `json:"tokens"`
	DocCount    int       `json:"doc_count"`
	ContentHash string    `json:"content_hash"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Validate returns an error if the endpoint contains invalid fields.
func (e *Endpoint) Validate() error {
	if e.SiteID == 0 {
		return Errorf(EINVALID, "endpoint site ID required")
	}
	if e.URL == "" {
		return Errorf(EINVALID, "endpoint URL required")
	}
	return nil
}

// EndpointService represents a service for managing site endpoints.
type EndpointService interface {
	// UpsertEndpoint creates the endpoint or replaces the existing one
	// with the same site and URL.
	UpsertEndpoint(ctx context.Context, e *Endpoint) error

	// FindEndpoints retrieves endpoints matching the filter.
	FindEndpoints(ctx context.Context, filter EndpointFilter) ([]*Endpoint, error)

	// DeleteEndpoint removes the endpoint for a site URL.
	// Returns ENOTFOUND if no such endpoint exists.
	DeleteEndpoint(ctx context.Context, siteID int64, url string) error
}

// EndpointFilter represents a filter for FindEndpoints.
type EndpointFilter struct {
	SiteID *int64  `json:"site_id"`
	URL    *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// EndpointIndexer derives endpoint statistics from a synced page.
type EndpointIndexer interface {
	Index(ctx context.Context, e *Endpoint, html string) error
}
