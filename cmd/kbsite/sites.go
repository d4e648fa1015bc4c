package main

import (
	"fmt"

	"github.com/TheOne1006/kbsite"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	sites, err := deps.Manager.ListSites(deps.Ctx, c.KB)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kbsite.ErrorMessage(err))
		return err
	}

	if len(sites) == 0 {
		fmt.Fprintf(deps.Stdout, "No sites in %q. Use the create_site API to add one.\n", c.KB)
		return nil
	}

	for _, s := range sites {
		fmt.Fprintf(deps.Stdout, "%d  %s  %s  %s  v%d\n", s.ID, s.SiteName, s.FolderName, s.Hostname, s.SiteVersion)
	}
	return nil
}
