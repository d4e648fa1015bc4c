// Package htmltomarkdown renders the main content of synced pages as
// Markdown, the form endpoint statistics are computed from.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/TheOne1006/kbsite"
)

var _ kbsite.Converter = (*Converter)(nil)

// Converter renders page content for the endpoint indexer. Headings are
// always written in ATX form and code in fenced blocks, which is what
// kbsite.SplitSections counts sections by.
type Converter struct {
	conv *converter.Converter

	// Domain, when set, makes relative links in the output absolute.
	Domain string
}

func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
				commonmark.WithCodeBlockFence("```"),
			),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert returns the Markdown for html with surrounding blank lines
// trimmed. Blank input is EINVALID.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", kbsite.Errorf(kbsite.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if c.Domain != "" {
		opts = append(opts, converter.WithDomain(c.Domain))
	}
	md, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", kbsite.Errorf(kbsite.EINTERNAL, "convert markdown: %v", err)
	}
	return strings.TrimSpace(md), nil
}
