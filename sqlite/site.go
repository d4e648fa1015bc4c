package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TheOne1006/kbsite"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ kbsite.SiteService = (*SiteService)(nil)

// SiteService implements kbsite.SiteService using SQLite.
type SiteService struct {
	db  *DB
	now func() time.Time
}

// NewSiteService creates a new SiteService.
func NewSiteService(db *DB) *SiteService {
	return &SiteService{db: db, now: time.Now}
}

const siteColumns = `id, kb_name, site_name, folder_name, hostname, start_urls, pattern,
	remove_selectors, max_urls, site_version, site_mtime, create_time`

// CreateSite creates a new site.
func (s *SiteService) CreateSite(ctx context.Context, site *kbsite.Site) error {
	site.Normalize()
	if err := site.Validate(); err != nil {
		return err
	}

	startURLs, removeSelectors, err := encodeSiteLists(site)
	if err != nil {
		return err
	}
	site.CreatedAt = s.now().UTC()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO knowledge_site (kb_name, site_name, folder_name, hostname, start_urls, pattern,
			remove_selectors, max_urls, site_version, site_mtime, create_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, site.KBName, site.SiteName, site.FolderName, site.Hostname, startURLs, site.Pattern,
		removeSelectors, site.MaxURLs, site.SiteVersion, site.SiteMTime,
		site.CreatedAt.Format(time.RFC3339))
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return kbsite.Errorf(kbsite.ECONFLICT, "folder %s already used in knowledge base %s", site.FolderName, site.KBName)
	}
	if err != nil {
		return err
	}

	site.ID, err = result.LastInsertId()
	return err
}

// FindSiteByID retrieves a site of a knowledge base by ID.
func (s *SiteService) FindSiteByID(ctx context.Context, kbName string, id int64) (*kbsite.Site, error) {
	sites, err := s.FindSites(ctx, kbsite.SiteFilter{KBName: &kbName, ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(sites) == 0 {
		return nil, kbsite.Errorf(kbsite.ENOTFOUND, "site %d not found in knowledge base %s", id, kbName)
	}
	return sites[0], nil
}

// FindSites retrieves sites matching the filter, oldest first.
func (s *SiteService) FindSites(ctx context.Context, filter kbsite.SiteFilter) ([]*kbsite.Site, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + siteColumns + " FROM knowledge_site WHERE 1=1")

	if filter.KBName != nil {
		query.WriteString(" AND kb_name = ?")
		args = append(args, *filter.KBName)
	}
	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SiteName != nil {
		query.WriteString(" AND site_name = ?")
		args = append(args, *filter.SiteName)
	}
	if filter.FolderName != nil {
		query.WriteString(" AND folder_name = ?")
		args = append(args, *filter.FolderName)
	}

	query.WriteString(" ORDER BY id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sites := []*kbsite.Site{}
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}

	return sites, rows.Err()
}

// UpdateSite updates an existing site.
func (s *SiteService) UpdateSite(ctx context.Context, kbName string, id int64, upd kbsite.SiteUpdate) (*kbsite.Site, error) {
	site, err := s.FindSiteByID(ctx, kbName, id)
	if err != nil {
		return nil, err
	}

	upd.Apply(site)
	site.Normalize()

	if err := site.Validate(); err != nil {
		return nil, err
	}

	startURLs, removeSelectors, err := encodeSiteLists(site)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE knowledge_site
		SET site_name = ?, hostname = ?, start_urls = ?, pattern = ?, remove_selectors = ?, max_urls = ?
		WHERE kb_name = ? AND id = ?
	`, site.SiteName, site.Hostname, startURLs, site.Pattern, removeSelectors, site.MaxURLs, kbName, id)
	if err != nil {
		return nil, err
	}

	return site, nil
}

// TouchSite bumps the site version and records the current time as its mtime.
func (s *SiteService) TouchSite(ctx context.Context, kbName string, id int64) (*kbsite.Site, error) {
	mtime := float64(s.now().UnixNano()) / float64(time.Second)

	result, err := s.db.ExecContext(ctx, `
		UPDATE knowledge_site
		SET site_version = site_version + 1, site_mtime = ?
		WHERE kb_name = ? AND id = ?
	`, mtime, kbName, id)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(result, "site %d not found in knowledge base %s", id, kbName); err != nil {
		return nil, err
	}

	return s.FindSiteByID(ctx, kbName, id)
}

// DeleteSite permanently removes a site. Its endpoints are removed by the
// foreign key cascade.
func (s *SiteService) DeleteSite(ctx context.Context, kbName string, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM knowledge_site WHERE kb_name = ? AND id = ?", kbName, id)
	if err != nil {
		return err
	}
	return requireAffected(result, "site %d not found in knowledge base %s", id, kbName)
}

// scanSite scans one knowledge_site row selected with siteColumns.
func scanSite(rows *sql.Rows) (*kbsite.Site, error) {
	var site kbsite.Site
	var startURLs, removeSelectors, createdAt string

	if err := rows.Scan(&site.ID, &site.KBName, &site.SiteName, &site.FolderName, &site.Hostname,
		&startURLs, &site.Pattern, &removeSelectors, &site.MaxURLs, &site.SiteVersion,
		&site.SiteMTime, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(startURLs), &site.StartURLs); err != nil {
		return nil, fmt.Errorf("failed to decode start_urls: %w", err)
	}
	if err := json.Unmarshal([]byte(removeSelectors), &site.RemoveSelectors); err != nil {
		return nil, fmt.Errorf("failed to decode remove_selectors: %w", err)
	}

	var err error
	site.CreatedAt, err = parseRFC3339(createdAt, "create_time")
	if err != nil {
		return nil, err
	}

	return &site, nil
}

func encodeSiteLists(site *kbsite.Site) (startURLs, removeSelectors string, err error) {
	b, err := json.Marshal(site.StartURLs)
	if err != nil {
		return "", "", err
	}
	startURLs = string(b)

	b, err = json.Marshal(site.RemoveSelectors)
	if err != nil {
		return "", "", err
	}
	return startURLs, string(b), nil
}
