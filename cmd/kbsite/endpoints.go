package main

import (
	"fmt"

	"github.com/TheOne1006/kbsite"
	"github.com/TheOne1006/kbsite/crawl"
)

// Run executes the endpoints command.
func (c *EndpointsCmd) Run(deps *Dependencies) error {
	endpoints, err := deps.Manager.ListEndpoints(deps.Ctx, c.KB, c.SiteID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kbsite.ErrorMessage(err))
		return err
	}

	if len(endpoints) == 0 {
		fmt.Fprintf(deps.Stdout, "No pages synced for site %d.\n", c.SiteID)
		return nil
	}

	total := 0
	for _, e := range endpoints {
		fmt.Fprintln(deps.Stdout, crawl.FormatEndpoint(e, progressWidth))
		total += e.Size
	}
	fmt.Fprintf(deps.Stdout, "%d pages, %s\n", len(endpoints), crawl.FormatBytes(total))
	return nil
}
