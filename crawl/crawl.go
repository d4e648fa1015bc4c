// Package crawl orchestrates site link extraction and page syncing.
// It coordinates fetching, sanitizing, storage and endpoint indexing of
// the pages of a knowledge-base site.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/TheOne1006/kbsite"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many seed pages are fetched at once.
const DefaultConcurrency = 4

var _ kbsite.URLExtractor = (*Extractor)(nil)

// Extractor collects candidate page URLs for a site from its seed pages.
type Extractor struct {
	Fetcher     kbsite.Fetcher
	Links       kbsite.LinkExtractor
	Sitemaps    kbsite.SitemapService
	Concurrency int
	Logger      *slog.Logger
}

// ExtractSiteURLs fetches the seed pages and returns up to maxURLs unique
// link targets matching pattern, in seed then document order.
//
// Start URLs not beginning with "http" are prefixed with hostname. Seeds
// ending in ".xml" are read as sitemaps. With no start URLs at all the
// site's own sitemaps are used.
func (e *Extractor) ExtractSiteURLs(ctx context.Context, hostname string, startURLs []string, pattern string, maxURLs int) ([]string, error) {
	hostname = strings.TrimRight(hostname, "/ ")
	if maxURLs < 1 {
		return nil, kbsite.Errorf(kbsite.EINVALID, "max_urls must be at least 1")
	}
	re, err := kbsite.CompilePattern(pattern)
	if err != nil {
		return nil, err
	}

	seeds := kbsite.ExpandURLs(hostname, startURLs)
	if len(seeds) == 0 {
		return e.discover(ctx, hostname, pattern, maxURLs)
	}
	if err := kbsite.CheckURLs(seeds); err != nil {
		return nil, err
	}

	pages, err := e.fetchSeeds(ctx, seeds)
	if err != nil {
		return nil, err
	}

	c := newCollector(maxURLs)
	for i, seed := range seeds {
		if c.full() {
			break
		}
		for _, link := range pages[i] {
			if c.full() {
				break
			}
			if re.MatchString(link) {
				c.add(link)
			}
		}
		e.logger().Debug("seed extracted", "url", seed, "links", len(pages[i]))
	}

	return c.links, nil
}

// fetchSeeds returns the candidate links of every seed, indexed like seeds.
// Any failing seed fails the whole extraction.
func (e *Extractor) fetchSeeds(ctx context.Context, seeds []string) ([][]string, error) {
	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	pages := make([][]string, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, seed := range seeds {
		g.Go(func() error {
			if isSitemap(seed) && e.Sitemaps != nil {
				urls, err := e.Sitemaps.SitemapURLs(gctx, seed)
				if err != nil {
					return kbsite.Errorf(kbsite.EINTERNAL, "read sitemap %s: %v", seed, err)
				}
				pages[i] = urls
				return nil
			}

			html, err := e.Fetcher.Fetch(gctx, seed)
			if err != nil {
				return kbsite.Errorf(kbsite.EINTERNAL, "fetch %s: %v", seed, err)
			}
			links, err := e.Links.ExtractLinks(html, seed)
			if err != nil {
				return err
			}
			pages[i] = links
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// discover falls back to the sitemaps advertised by the site itself.
func (e *Extractor) discover(ctx context.Context, hostname, pattern string, maxURLs int) ([]string, error) {
	if e.Sitemaps == nil {
		return nil, kbsite.Errorf(kbsite.EINVALID, "start_urls required")
	}
	if err := kbsite.CheckURLs([]string{hostname}); err != nil {
		return nil, err
	}
	filter, err := kbsite.NewPatternFilter(pattern)
	if err != nil {
		return nil, err
	}

	urls, err := e.Sitemaps.DiscoverURLs(ctx, hostname, filter)
	if err != nil {
		return nil, kbsite.Errorf(kbsite.EINTERNAL, "discover sitemap of %s: %v", hostname, err)
	}

	c := newCollector(maxURLs)
	for _, u := range urls {
		if c.full() {
			break
		}
		c.add(u)
	}
	return c.links, nil
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// collector accumulates unique links up to a limit.
type collector struct {
	max   int
	seen  map[string]bool
	links []string
}

func newCollector(max int) *collector {
	return &collector{max: max, seen: map[string]bool{}, links: []string{}}
}

func (c *collector) full() bool { return len(c.links) >= c.max }

func (c *collector) add(link string) {
	if c.seen[link] {
		return
	}
	c.seen[link] = true
	c.links = append(c.links, link)
}

func isSitemap(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".xml")
}

// hostOf returns the host of rawURL, or rawURL itself when it cannot be parsed.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// since reports elapsed time in whole milliseconds for log attributes.
func since(begin time.Time) time.Duration {
	return time.Since(begin).Round(time.Millisecond)
}
