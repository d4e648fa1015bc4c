package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/TheOne1006/kbsite"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ kbsite.EndpointService = (*EndpointService)(nil)

// EndpointService implements kbsite.EndpointService using SQLite.
type EndpointService struct {
	db *DB
}

// NewEndpointService creates a new EndpointService.
func NewEndpointService(db *DB) *EndpointService {
	return &EndpointService{db: db}
}

// UpsertEndpoint inserts the endpoint or replaces the stored one with the
// same site and URL. The ID of the stored row is kept on replace.
func (s *EndpointService) UpsertEndpoint(ctx context.Context, e *kbsite.Endpoint) error {
	if err := e.Validate(); err != nil {
		return err
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.FetchedAt.IsZero() {
		e.FetchedAt = time.Now().UTC()
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO site_endpoint (id, site_id, url, file_path, loader, splitter, title, size,
			tokens, doc_count, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(site_id, url) DO UPDATE SET
			file_path = excluded.file_path,
			loader = excluded.loader,
			splitter = excluded.splitter,
			title = excluded.title,
			size = excluded.size,
			tokens = excluded.tokens,
			doc_count = excluded.doc_count,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, e.ID, e.SiteID, e.URL, e.FilePath, e.Loader, e.Splitter, e.Title, e.Size,
		e.Tokens, e.DocCount, e.ContentHash, e.FetchedAt.Format(time.RFC3339))

	return row.Scan(&e.ID)
}

// FindEndpoints retrieves endpoints matching the filter ordered by URL.
func (s *EndpointService) FindEndpoints(ctx context.Context, filter kbsite.EndpointFilter) ([]*kbsite.Endpoint, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, site_id, url, file_path, loader, splitter, title, size,
		tokens, doc_count, content_hash, fetched_at FROM site_endpoint WHERE 1=1`)

	if filter.SiteID != nil {
		query.WriteString(" AND site_id = ?")
		args = append(args, *filter.SiteID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	endpoints := []*kbsite.Endpoint{}
	for rows.Next() {
		var e kbsite.Endpoint
		var fetchedAt string
		if err := rows.Scan(&e.ID, &e.SiteID, &e.URL, &e.FilePath, &e.Loader, &e.Splitter,
			&e.Title, &e.Size, &e.Tokens, &e.DocCount, &e.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}
		e.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, &e)
	}

	return endpoints, rows.Err()
}

// DeleteEndpoint removes the endpoint for a site URL.
func (s *EndpointService) DeleteEndpoint(ctx context.Context, siteID int64, url string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM site_endpoint WHERE site_id = ? AND url = ?", siteID, url)
	if err != nil {
		return err
	}
	return requireAffected(result, "endpoint %s not found for site %d", url, siteID)
}
