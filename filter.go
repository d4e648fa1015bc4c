package kbsite

import (
	"regexp"
	"strings"
)

var (
	urlRe    = regexp.MustCompile(`^https?://\S+`)
	folderRe = regexp.MustCompile(`^[0-9a-zA-Z-_]+$`)
)

// CheckURLs returns EINVALID for the first URL that is not an http(s) URL.
func CheckURLs(urls []string) error {
	for _, u := range urls {
		if !urlRe.MatchString(u) {
			return Errorf(EINVALID, "%s format error", u)
		}
	}
	return nil
}

// CheckFolderName returns EINVALID unless name consists only of ASCII
// letters, digits, '-' and '_'.
func CheckFolderName(name string) error {
	if !folderRe.MatchString(name) {
		return Errorf(EINVALID, "folder %s format error", name)
	}
	return nil
}

// ValidateKBName rejects knowledge base names that could escape the
// knowledge base root.
func ValidateKBName(name string) error {
	if name == "" {
		return Errorf(EINVALID, "knowledge base name required")
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return Errorf(EINVALID, "invalid knowledge base name %q", name)
	}
	return nil
}

// FilterMode selects which discovered URLs a sync downloads.
type FilterMode string

// Filter modes.
const (
	// FilterAll re-downloads every discovered URL.
	FilterAll FilterMode = "all"
	// FilterNew downloads only URLs without a local copy.
	FilterNew FilterMode = "new"
)

// ParseFilterMode validates a filter mode name. The legacy names "none"
// and "append" are accepted as aliases for "all" and "new".
func ParseFilterMode(s string) (FilterMode, error) {
	switch s {
	case "all", "none":
		return FilterAll, nil
	case "new", "append":
		return FilterNew, nil
	}
	return "", Errorf(EINVALID, "filter_method=%s is not allowed", s)
}

// FilterSiteURLs returns the URLs to download for mode. FilterAll returns
// candidates unchanged; FilterNew returns the candidates whose page is not
// in local, in candidate order. URLs are compared by PageKey.
func FilterSiteURLs(candidates []string, mode FilterMode, local []string) ([]string, error) {
	switch mode {
	case FilterAll:
		return candidates, nil
	case FilterNew:
		seen := make(map[string]struct{}, len(local))
		for _, u := range local {
			seen[PageKey(u)] = struct{}{}
		}
		var filtered []string
		for _, u := range candidates {
			if _, ok := seen[PageKey(u)]; !ok {
				filtered = append(filtered, u)
			}
		}
		return filtered, nil
	}
	return nil, Errorf(EINVALID, "filter_method=%s is not allowed", mode)
}

// Dedupe removes repeated URLs, keeping the first occurrence.
func Dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
