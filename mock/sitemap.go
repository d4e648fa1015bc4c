package mock

import (
	"context"

	"github.com/TheOne1006/kbsite"
)

var _ kbsite.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of kbsite.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *kbsite.URLFilter) ([]string, error)
	SitemapURLsFn  func(ctx context.Context, sitemapURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *kbsite.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

func (s *SitemapService) SitemapURLs(ctx context.Context, sitemapURL string) ([]string, error) {
	return s.SitemapURLsFn(ctx, sitemapURL)
}
