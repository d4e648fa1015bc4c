package kbsite

import "context"

// LinkExtractor collects anchor targets from a page.
type LinkExtractor interface {
	// ExtractLinks returns the href of every anchor in document order.
	// Hrefs not starting with "http" are prefixed with the scheme and host
	// of pageURL.
	ExtractLinks(html string, pageURL string) ([]string, error)
}

// Sanitizer prepares a fetched page for local storage.
type Sanitizer interface {
	// Sanitize removes nodes matching removeSelectors, injects a <base>
	// tag for the page's origin and rewrites root-relative href and src
	// attributes to absolute URLs. Malformed input returns EINVALID.
	Sanitize(html string, pageURL string, removeSelectors []string) (string, error)
}

// SyncEvent reports the outcome of one URL during a site sync.
type SyncEvent struct {
	Code     int    `json:"code"`
	Msg      string `json:"msg"`
	Doc      string `json:"doc,omitempty"`
	URL      string `json:"url"`
	Finished int    `json:"finished"`
	Total    int    `json:"total"`
}

// OK reports whether the URL was synced.
func (e SyncEvent) OK() bool {
	return e.Code == 200
}

// SyncEventFunc receives sync events as each URL completes.
type SyncEventFunc func(SyncEvent)

// SyncResult summarizes a finished site sync.
type SyncResult struct {
	Saved  int `json:"saved"`
	Failed int `json:"failed"`
}

// PageStore persists synced pages in a knowledge base's content folder.
// Pages of a site live under <content>/<folder>/<url-path>.html.
type PageStore interface {
	// DocPath returns the content path of a knowledge base.
	// Returns EINVALID for unsafe names and ENOTFOUND for unknown ones.
	DocPath(kbName string) (string, error)

	// CheckFolder validates a new site folder name and returns its path.
	// Returns EINVALID for a malformed name or an existing folder.
	CheckFolder(kbName, folder string) (string, error)

	// CreateFolder creates the folder for a new site.
	CreateFolder(kbName, folder string) error

	// RemoveFolder deletes a site folder and everything below it.
	RemoveFolder(kbName, folder string) error

	// PagePath returns the file path a page URL is stored at.
	PagePath(kbName, folder, url string) (string, error)

	// WritePage stores html for url, creating parent directories,
	// and returns the written path.
	WritePage(ctx context.Context, kbName, folder, url, html string) (string, error)

	// RemovePage deletes the stored copy of url if present and returns
	// its path.
	RemovePage(kbName, folder, url string) (string, error)

	// ListPages returns the stored page files of a folder as paths
	// relative to the folder, each starting with "/". Temporary and
	// hidden files are skipped.
	ListPages(kbName, folder string) ([]string, error)
}

// LocalPage is a synced page found in a site folder.
type LocalPage struct {
	// URL is the page URL the file was synced from.
	URL string `json:"url"`
	// PreviewFile is the file path relative to the content path.
	PreviewFile string `json:"preview_file"`
}
