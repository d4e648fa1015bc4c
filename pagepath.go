package kbsite

import (
	"net/url"
	"path"
	"strings"
)

const (
	// indexPage is the file stem of a page whose URL path ends in "/".
	indexPage = "index"

	// escapedIndex is the file stem of a page whose last path segment is
	// literally "index", so it does not share a file with its directory page.
	escapedIndex = "%69ndex"
)

// PagePath maps a page URL to its file path relative to a site folder.
// Path segments keep their percent-encoding, so every file name maps back
// to exactly one URL path. Query and fragment are not part of the path.
//
//	https://x.com                   → index.html
//	https://x.com/docs/             → docs/index.html
//	https://x.com/docs/index        → docs/%69ndex.html
//	https://x.com/docs/a%2Fb        → docs/a%2Fb.html
func PagePath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	p := u.EscapedPath()
	dir := p == "" || strings.HasSuffix(p, "/")

	// Cleaning against the root keeps ".." segments inside the folder.
	p = strings.TrimPrefix(path.Clean("/"+p), "/")

	switch {
	case p == "":
		return indexPage + ".html", nil
	case dir:
		return p + "/" + indexPage + ".html", nil
	}
	if parent, base := path.Split(p); base == indexPage {
		p = parent + escapedIndex
	}
	return p + ".html", nil
}

// pageURL is the inverse of PagePath: it joins origin with the URL path
// stored at relPath.
func pageURL(origin, relPath string) string {
	p := "/" + strings.TrimPrefix(strings.TrimSuffix(relPath, ".html"), "/")
	switch parent, base := path.Split(p); base {
	case indexPage:
		p = parent
	case escapedIndex:
		p = parent + indexPage
	}
	return origin + p
}

// PageKey returns the URL of the page rawURL is stored as. URLs that share
// a file have the same key: "https://x.com" and "https://x.com/" do, and so
// do "/a" and "/a#intro".
func PageKey(rawURL string) string {
	rel, err := PagePath(rawURL)
	if err != nil {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return pageURL(u.Scheme+"://"+u.Host, rel)
}
