package kbsite

import "context"

// URLExtractor collects the links a site's seed pages point to.
type URLExtractor interface {
	// ExtractSiteURLs fetches the start URLs (sitemaps are expanded) and
	// returns at most maxURLs unique links matching pattern.
	ExtractSiteURLs(ctx context.Context, hostname string, startURLs []string, pattern string, maxURLs int) ([]string, error)
}

// SiteSyncer downloads site pages into the knowledge base.
type SiteSyncer interface {
	// SyncSite downloads the URLs selected by mode, calling emit once per URL.
	SyncSite(ctx context.Context, kbName string, siteID int64, urls []string, mode string, emit SyncEventFunc) (*SyncResult, error)

	// SyncURL downloads a single URL regardless of local state and returns
	// the written file path.
	SyncURL(ctx context.Context, kbName string, siteID int64, url string) (string, error)
}

// SiteManager keeps sites, their folders and endpoints consistent.
type SiteManager interface {
	CreateSite(ctx context.Context, site *Site) error
	UpdateSite(ctx context.Context, kbName string, id int64, upd SiteUpdate) (*Site, error)
	DeleteSite(ctx context.Context, kbName string, id int64, deleteContent bool) error
	ListSites(ctx context.Context, kbName string) ([]*Site, error)
	ListLocalPages(ctx context.Context, kbName, folder string) ([]LocalPage, error)

	// RemoveURL deletes the local copy of a page and its endpoint and
	// returns the removed file path.
	RemoveURL(ctx context.Context, kbName string, id int64, url string) (string, error)

	ListEndpoints(ctx context.Context, kbName string, id int64) ([]*Endpoint, error)
}
