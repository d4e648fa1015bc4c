package main

import (
	"fmt"

	"github.com/TheOne1006/kbsite"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	links, err := deps.Extractor.ExtractSiteURLs(deps.Ctx, c.Hostname, c.StartURLs, c.Pattern, c.MaxURLs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kbsite.ErrorMessage(err))
		return err
	}

	for _, link := range links {
		fmt.Fprintln(deps.Stdout, link)
	}
	return nil
}
