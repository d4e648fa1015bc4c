package mock

import (
	"context"

	"github.com/TheOne1006/kbsite"
)

var _ kbsite.SiteService = (*SiteService)(nil)

// SiteService is a mock implementation of kbsite.SiteService.
type SiteService struct {
	CreateSiteFn   func(ctx context.Context, site *kbsite.Site) error
	FindSiteByIDFn func(ctx context.Context, kbName string, id int64) (*kbsite.Site, error)
	FindSitesFn    func(ctx context.Context, filter kbsite.SiteFilter) ([]*kbsite.Site, error)
	UpdateSiteFn   func(ctx context.Context, kbName string, id int64, upd kbsite.SiteUpdate) (*kbsite.Site, error)
	TouchSiteFn    func(ctx context.Context, kbName string, id int64) (*kbsite.Site, error)
	DeleteSiteFn   func(ctx context.Context, kbName string, id int64) error
}

func (s *SiteService) CreateSite(ctx context.Context, site *kbsite.Site) error {
	return s.CreateSiteFn(ctx, site)
}

func (s *SiteService) FindSiteByID(ctx context.Context, kbName string, id int64) (*kbsite.Site, error) {
	return s.FindSiteByIDFn(ctx, kbName, id)
}

func (s *SiteService) FindSites(ctx context.Context, filter kbsite.SiteFilter) ([]*kbsite.Site, error) {
	return s.FindSitesFn(ctx, filter)
}

func (s *SiteService) UpdateSite(ctx context.Context, kbName string, id int64, upd kbsite.SiteUpdate) (*kbsite.Site, error) {
	return s.UpdateSiteFn(ctx, kbName, id, upd)
}

func (s *SiteService) TouchSite(ctx context.Context, kbName string, id int64) (*kbsite.Site, error) {
	return s.TouchSiteFn(ctx, kbName, id)
}

func (s *SiteService) DeleteSite(ctx context.Context, kbName string, id int64) error {
	return s.DeleteSiteFn(ctx, kbName, id)
}
