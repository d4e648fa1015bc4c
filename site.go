package kbsite

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Site is a crawl target bound to one knowledge base. Pages synced for the
// site are stored under the knowledge base's content path in FolderName.
type Site struct {
	ID              int64     `json:"id"`
	KBName          string    `json:"kb_name"`
	SiteName        string    `json:"site_name"`
	FolderName      string    `json:"folder_name"`
	Hostname        string    `json:"hostname"`
	StartURLs       []string  `json:"start_urls"`
	Pattern         string    `json:"pattern"`
	RemoveSelectors []string  `json:"remove_selectors"`
	MaxURLs         int       `json:"max_urls"`
	SiteVersion     int       `json:"site_version"`
	SiteMTime       float64   `json:"site_mtime"`
	CreatedAt       time.Time `json:"create_time"`
}

// Normalize trims the hostname and folder name the way they are persisted
// and applies field defaults.
func (s *Site) Normalize() {
	s.Hostname = strings.TrimRight(s.Hostname, "/ ")
	s.FolderName = strings.Trim(s.FolderName, "/ ")
	s.SiteName = strings.TrimSpace(s.SiteName)
	if s.MaxURLs == 0 {
		s.MaxURLs = 1
	}
	if s.SiteVersion == 0 {
		s.SiteVersion = 1
	}
	if s.StartURLs == nil {
		s.StartURLs = []string{}
	}
	if s.RemoveSelectors == nil {
		s.RemoveSelectors = []string{}
	}
}

// Validate returns an error if the site contains invalid fields.
func (s *Site) Validate() error {
	if s.KBName == "" {
		return Errorf(EINVALID, "site knowledge base name required")
	}
	if s.SiteName == "" {
		return Errorf(EINVALID, "site name required")
	}
	if s.Hostname == "" {
		return Errorf(EINVALID, "site hostname required")
	}
	if err := CheckFolderName(s.FolderName); err != nil {
		return err
	}
	if s.MaxURLs < 1 {
		return Errorf(EINVALID, "site max_urls must be at least 1")
	}
	if _, err := regexp.Compile(s.Pattern); err != nil {
		return Errorf(EINVALID, "invalid site pattern %q: %v", s.Pattern, err)
	}
	return CheckURLs(s.FullStartURLs())
}

// FullStartURLs returns the start URLs with relative entries prefixed by
// the site's hostname.
func (s *Site) FullStartURLs() []string {
	return ExpandURLs(s.Hostname, s.StartURLs)
}

// LocalURL maps a file path relative to the site folder, as returned by
// PageStore.ListPages, back to the page URL it was synced from. It is the
// inverse of PagePath.
func (s *Site) LocalURL(relPath string) string {
	return pageURL(s.Hostname, relPath)
}

// ExpandURLs prefixes every URL that does not start with "http" with hostname.
func ExpandURLs(hostname string, urls []string) []string {
	full := make([]string, 0, len(urls))
	for _, u := range urls {
		if strings.HasPrefix(u, "http") {
			full = append(full, u)
			continue
		}
		full = append(full, hostname+u)
	}
	return full
}

// SiteService represents a service for managing sites.
type SiteService interface {
	// CreateSite creates a new site. The site ID is assigned on success.
	// Returns ECONFLICT if the folder name is taken in the knowledge base.
	CreateSite(ctx context.Context, site *Site) error

	// FindSiteByID retrieves a site of a knowledge base by ID.
	// Returns ENOTFOUND if the site does not exist.
	FindSiteByID(ctx context.Context, kbName string, id int64) (*Site, error)

	// FindSites retrieves sites matching the filter.
	FindSites(ctx context.Context, filter SiteFilter) ([]*Site, error)

	// UpdateSite updates an existing site.
	// Returns ENOTFOUND if the site does not exist.
	UpdateSite(ctx context.Context, kbName string, id int64, upd SiteUpdate) (*Site, error)

	// TouchSite bumps the site version and records the sync time.
	TouchSite(ctx context.Context, kbName string, id int64) (*Site, error)

	// DeleteSite permanently removes a site and its endpoints.
	// Returns ENOTFOUND if the site does not exist.
	DeleteSite(ctx context.Context, kbName string, id int64) error
}

// SiteFilter represents a filter for FindSites.
type SiteFilter struct {
	KBName     *string `json:"kb_name"`
	ID         *int64  `json:"id"`
	SiteName   *string `json:"site_name"`
	FolderName *string `json:"folder_name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SiteUpdate represents fields that can be updated on a site.
// The knowledge base, ID and folder of a site are fixed at creation.
type SiteUpdate struct {
	SiteName        *string   `json:"site_name"`
	Hostname        *string   `json:"hostname"`
	StartURLs       *[]string `json:"start_urls"`
	Pattern         *string   `json:"pattern"`
	RemoveSelectors *[]string `json:"remove_selectors"`
	MaxURLs         *int      `json:"max_urls"`
}

// Apply copies the set fields of upd onto site.
func (upd SiteUpdate) Apply(site *Site) {
	if upd.SiteName != nil {
		site.SiteName = *upd.SiteName
	}
	if upd.Hostname != nil {
		site.Hostname = *upd.Hostname
	}
	if upd.StartURLs != nil {
		site.StartURLs = *upd.StartURLs
	}
	if upd.Pattern != nil {
		site.Pattern = *upd.Pattern
	}
	if upd.RemoveSelectors != nil {
		site.RemoveSelectors = *upd.RemoveSelectors
	}
	if upd.MaxURLs != nil {
		site.MaxURLs = *upd.MaxURLs
	}
}
