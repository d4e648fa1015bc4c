package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/TheOne1006/kbsite"
	"github.com/beevik/etree"
)

// MaxSitemapDepth bounds how many sitemap indexes may be nested.
const MaxSitemapDepth = 5

// Ensure SitemapService implements kbsite.SitemapService.
var _ kbsite.SitemapService = (*SitemapService)(nil)

// SitemapService reads page URLs from sitemaps over HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the page URLs of a site's sitemaps in document order.
// Sitemaps are located via robots.txt "Sitemap:" lines, falling back to
// /sitemap.xml at the site root. A site without sitemaps yields an empty slice.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *kbsite.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, kbsite.Errorf(kbsite.EINVALID, "invalid base URL: %s", baseURL)
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemaps, err := s.locateSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	r := &sitemapReader{service: s, seen: map[string]bool{}, urls: []string{}, filter: filter}
	for _, sm := range sitemaps {
		if err := r.read(ctx, sm, 0); err != nil {
			return nil, err
		}
	}
	return r.urls, nil
}

// SitemapURLs returns the page URLs listed in sitemapURL, following nested
// sitemap indexes.
func (s *SitemapService) SitemapURLs(ctx context.Context, sitemapURL string) ([]string, error) {
	r := &sitemapReader{service: s, seen: map[string]bool{}, urls: []string{}}
	if err := r.read(ctx, sitemapURL, 0); err != nil {
		return nil, err
	}
	return r.urls, nil
}

// locateSitemaps returns the sitemaps advertised in robots.txt, or
// /sitemap.xml when robots.txt has none and the file exists.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots, err := s.robotsSitemaps(ctx, root.JoinPath("robots.txt").String())
	if err == nil && len(robots) > 0 {
		return robots, nil
	}

	fallback := root.JoinPath("sitemap.xml").String()
	exists, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return []string{}, nil
	}
	if !exists {
		return []string{}, nil
	}
	return []string{fallback}, nil
}

func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			sitemaps = append(sitemaps, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

func (s *SitemapService) exists(ctx context.Context, target string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}

// sitemapReader accumulates unique page URLs across one or more sitemaps.
type sitemapReader struct {
	service *SitemapService
	filter  *kbsite.URLFilter
	seen    map[string]bool
	urls    []string
}

func (r *sitemapReader) read(ctx context.Context, sitemapURL string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.seen[sitemapURL] {
		return nil
	}
	r.seen[sitemapURL] = true

	if depth > MaxSitemapDepth {
		return kbsite.Errorf(kbsite.EINVALID, "sitemap %s nested too deeply", sitemapURL)
	}

	body, err := r.service.get(ctx, sitemapURL)
	if err != nil {
		return err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("empty sitemap XML: %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		for _, child := range locs(root, "sitemap") {
			if err := r.read(ctx, child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, u := range locs(root, "url") {
		if r.seen[u] || !r.filter.Match(u) {
			continue
		}
		r.seen[u] = true
		r.urls = append(r.urls, u)
	}
	return nil
}

// locs returns the trimmed <loc> text of every child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}
