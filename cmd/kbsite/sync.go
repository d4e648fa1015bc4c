package main

import (
	"fmt"

	"github.com/TheOne1006/kbsite"
	"github.com/TheOne1006/kbsite/crawl"
)

// progressWidth is the URL column width of progress lines.
const progressWidth = 72

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	urls := c.URLs
	if len(urls) == 0 {
		site, err := c.findSite(deps)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", kbsite.ErrorMessage(err))
			return err
		}

		urls, err = deps.Extractor.ExtractSiteURLs(deps.Ctx, site.Hostname, site.StartURLs, site.Pattern, site.MaxURLs)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error extracting links: %s\n", kbsite.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Found %d links\n", len(urls))
	}

	progress := func(ev kbsite.SyncEvent) {
		w := deps.Stdout
		if !ev.OK() {
			w = deps.Stderr
		}
		fmt.Fprintln(w, crawl.FormatEvent(ev, progressWidth))
	}

	result, err := deps.Syncer.SyncSite(deps.Ctx, c.KB, c.SiteID, urls, c.Mode, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kbsite.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages, %d failed\n", result.Saved, result.Failed)
	return nil
}

func (c *SyncCmd) findSite(deps *Dependencies) (*kbsite.Site, error) {
	sites, err := deps.Manager.ListSites(deps.Ctx, c.KB)
	if err != nil {
		return nil, err
	}
	for _, s := range sites {
		if s.ID == c.SiteID {
			return s, nil
		}
	}
	return nil, kbsite.Errorf(kbsite.ENOTFOUND, "site %d not found in %s", c.SiteID, c.KB)
}
