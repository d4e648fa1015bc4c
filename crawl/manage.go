package crawl

import (
	"context"
	"log/slog"

	"github.com/TheOne1006/kbsite"
)

var _ kbsite.SiteManager = (*Manager)(nil)

// Manager keeps site records, their folders and endpoint index consistent.
type Manager struct {
	Sites     kbsite.SiteService
	Endpoints kbsite.EndpointService
	Pages     kbsite.PageStore
	Logger    *slog.Logger
}

// CreateSite registers a site and creates its empty folder.
// Returns EINVALID when the folder name is malformed or already exists.
func (m *Manager) CreateSite(ctx context.Context, site *kbsite.Site) error {
	if _, err := m.Pages.DocPath(site.KBName); err != nil {
		return err
	}
	site.Normalize()
	if err := site.Validate(); err != nil {
		return err
	}
	if _, err := m.Pages.CheckFolder(site.KBName, site.FolderName); err != nil {
		return err
	}

	if err := m.Sites.CreateSite(ctx, site); err != nil {
		return err
	}

	if err := m.Pages.CreateFolder(site.KBName, site.FolderName); err != nil {
		if derr := m.Sites.DeleteSite(ctx, site.KBName, site.ID); derr != nil {
			m.logger().Error("rollback site failed", "kb", site.KBName, "site_id", site.ID, "err", derr)
		}
		return err
	}

	m.logger().Info("site created", "kb", site.KBName, "site_id", site.ID, "folder", site.FolderName)
	return nil
}

// UpdateSite updates the mutable fields of a site.
func (m *Manager) UpdateSite(ctx context.Context, kbName string, id int64, upd kbsite.SiteUpdate) (*kbsite.Site, error) {
	if _, err := m.Pages.DocPath(kbName); err != nil {
		return nil, err
	}
	return m.Sites.UpdateSite(ctx, kbName, id, upd)
}

// DeleteSite removes a site and its endpoints. With deleteContent the
// site folder is removed as well.
func (m *Manager) DeleteSite(ctx context.Context, kbName string, id int64, deleteContent bool) error {
	if _, err := m.Pages.DocPath(kbName); err != nil {
		return err
	}
	site, err := m.Sites.FindSiteByID(ctx, kbName, id)
	if err != nil {
		return err
	}
	if err := m.Sites.DeleteSite(ctx, kbName, id); err != nil {
		return err
	}
	if deleteContent {
		if err := m.Pages.RemoveFolder(kbName, site.FolderName); err != nil {
			return err
		}
	}

	m.logger().Info("site deleted", "kb", kbName, "site_id", id, "content", deleteContent)
	return nil
}

// ListSites returns the sites of a knowledge base.
func (m *Manager) ListSites(ctx context.Context, kbName string) ([]*kbsite.Site, error) {
	if _, err := m.Pages.DocPath(kbName); err != nil {
		return nil, err
	}
	return m.Sites.FindSites(ctx, kbsite.SiteFilter{KBName: &kbName})
}

// ListLocalPages returns the pages stored in a site folder together with
// the URLs they were synced from.
func (m *Manager) ListLocalPages(ctx context.Context, kbName, folder string) ([]kbsite.LocalPage, error) {
	if _, err := m.Pages.DocPath(kbName); err != nil {
		return nil, err
	}
	sites, err := m.Sites.FindSites(ctx, kbsite.SiteFilter{KBName: &kbName, FolderName: &folder, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(sites) == 0 {
		return nil, kbsite.Errorf(kbsite.ENOTFOUND, "no site uses folder %s", folder)
	}
	site := sites[0]

	files, err := m.Pages.ListPages(kbName, site.FolderName)
	if err != nil {
		return nil, err
	}

	pages := make([]kbsite.LocalPage, 0, len(files))
	for _, f := range files {
		pages = append(pages, kbsite.LocalPage{
			URL:         site.LocalURL(f),
			PreviewFile: site.FolderName + f,
		})
	}
	return pages, nil
}

// RemoveURL deletes the stored page of a site URL and its endpoint record,
// returning the removed document path.
func (m *Manager) RemoveURL(ctx context.Context, kbName string, id int64, url string) (string, error) {
	if err := kbsite.CheckURLs([]string{url}); err != nil {
		return "", err
	}
	if _, err := m.Pages.DocPath(kbName); err != nil {
		return "", err
	}
	site, err := m.Sites.FindSiteByID(ctx, kbName, id)
	if err != nil {
		return "", err
	}

	doc, err := m.Pages.RemovePage(kbName, site.FolderName, url)
	if err != nil {
		return "", err
	}

	err = m.Endpoints.DeleteEndpoint(ctx, site.ID, url)
	if err != nil && kbsite.ErrorCode(err) != kbsite.ENOTFOUND {
		return "", err
	}

	return doc, nil
}

// ListEndpoints returns the endpoint index of a site.
func (m *Manager) ListEndpoints(ctx context.Context, kbName string, id int64) ([]*kbsite.Endpoint, error) {
	if _, err := m.Pages.DocPath(kbName); err != nil {
		return nil, err
	}
	site, err := m.Sites.FindSiteByID(ctx, kbName, id)
	if err != nil {
		return nil, err
	}
	return m.Endpoints.FindEndpoints(ctx, kbsite.EndpointFilter{SiteID: &site.ID})
}

func (m *Manager) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return m.Logger
}
