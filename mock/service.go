package mock

import (
	"context"

	"github.com/TheOne1006/kbsite"
)

var _ kbsite.URLExtractor = (*URLExtractor)(nil)

// URLExtractor is a mock implementation of kbsite.URLExtractor.
type URLExtractor struct {
	ExtractSiteURLsFn func(ctx context.Context, hostname string, startURLs []string, pattern string, maxURLs int) ([]string, error)
}

func (e *URLExtractor) ExtractSiteURLs(ctx context.Context, hostname string, startURLs []string, pattern string, maxURLs int) ([]string, error) {
	return e.ExtractSiteURLsFn(ctx, hostname, startURLs, pattern, maxURLs)
}

var _ kbsite.SiteSyncer = (*SiteSyncer)(nil)

// SiteSyncer is a mock implementation of kbsite.SiteSyncer.
type SiteSyncer struct {
	SyncSiteFn func(ctx context.Context, kbName string, siteID int64, urls []string, mode string, emit kbsite.SyncEventFunc) (*kbsite.SyncResult, error)
	SyncURLFn  func(ctx context.Context, kbName string, siteID int64, url string) (string, error)
}

func (s *SiteSyncer) SyncSite(ctx context.Context, kbName string, siteID int64, urls []string, mode string, emit kbsite.SyncEventFunc) (*kbsite.SyncResult, error) {
	return s.SyncSiteFn(ctx, kbName, siteID, urls, mode, emit)
}

func (s *SiteSyncer) SyncURL(ctx context.Context, kbName string, siteID int64, url string) (string, error) {
	return s.SyncURLFn(ctx, kbName, siteID, url)
}

var _ kbsite.SiteManager = (*SiteManager)(nil)

// SiteManager is a mock implementation of kbsite.SiteManager.
type SiteManager struct {
	CreateSiteFn     func(ctx context.Context, site *kbsite.Site) error
	UpdateSiteFn     func(ctx context.Context, kbName string, id int64, upd kbsite.SiteUpdate) (*kbsite.Site, error)
	DeleteSiteFn     func(ctx context.Context, kbName string, id int64, deleteContent bool) error
	ListSitesFn      func(ctx context.Context, kbName string) ([]*kbsite.Site, error)
	ListLocalPagesFn func(ctx context.Context, kbName, folder string) ([]kbsite.LocalPage, error)
	RemoveURLFn      func(ctx context.Context, kbName string, id int64, url string) (string, error)
	ListEndpointsFn  func(ctx context.Context, kbName string, id int64) ([]*kbsite.Endpoint, error)
}

func (m *SiteManager) CreateSite(ctx context.Context, site *kbsite.Site) error {
	return m.CreateSiteFn(ctx, site)
}

func (m *SiteManager) UpdateSite(ctx context.Context, kbName string, id int64, upd kbsite.SiteUpdate) (*kbsite.Site, error) {
	return m.UpdateSiteFn(ctx, kbName, id, upd)
}

func (m *SiteManager) DeleteSite(ctx context.Context, kbName string, id int64, deleteContent bool) error {
	return m.DeleteSiteFn(ctx, kbName, id, deleteContent)
}

func (m *SiteManager) ListSites(ctx context.Context, kbName string) ([]*kbsite.Site, error) {
	return m.ListSitesFn(ctx, kbName)
}

func (m *SiteManager) ListLocalPages(ctx context.Context, kbName, folder string) ([]kbsite.LocalPage, error) {
	return m.ListLocalPagesFn(ctx, kbName, folder)
}

func (m *SiteManager) RemoveURL(ctx context.Context, kbName string, id int64, url string) (string, error) {
	return m.RemoveURLFn(ctx, kbName, id, url)
}

func (m *SiteManager) ListEndpoints(ctx context.Context, kbName string, id int64) ([]*kbsite.Endpoint, error) {
	return m.ListEndpointsFn(ctx, kbName, id)
}
