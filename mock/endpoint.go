package mock

import (
	"context"

	"github.com/TheOne1006/kbsite"
)

var _ kbsite.EndpointService = (*EndpointService)(nil)

// EndpointService is a mock implementation of kbsite.EndpointService.
type EndpointService struct {
	UpsertEndpointFn func(ctx context.Context, e *kbsite.Endpoint) error
	FindEndpointsFn  func(ctx context.Context, filter kbsite.EndpointFilter) ([]*kbsite.Endpoint, error)
	DeleteEndpointFn func(ctx context.Context, siteID int64, url string) error
}

func (s *EndpointService) UpsertEndpoint(ctx context.Context, e *kbsite.Endpoint) error {
	return s.UpsertEndpointFn(ctx, e)
}

func (s *EndpointService) FindEndpoints(ctx context.Context, filter kbsite.EndpointFilter) ([]*kbsite.Endpoint, error) {
	return s.FindEndpointsFn(ctx, filter)
}

func (s *EndpointService) DeleteEndpoint(ctx context.Context, siteID int64, url string) error {
	return s.DeleteEndpointFn(ctx, siteID, url)
}

var _ kbsite.EndpointIndexer = (*EndpointIndexer)(nil)

// EndpointIndexer is a mock implementation of kbsite.EndpointIndexer.
type EndpointIndexer struct {
	IndexFn func(ctx context.Context, e *kbsite.Endpoint, html string) error
}

func (i *EndpointIndexer) Index(ctx context.Context, e *kbsite.Endpoint, html string) error {
	return i.IndexFn(ctx, e, html)
}
