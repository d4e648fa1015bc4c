package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/TheOne1006/kbsite"
	"github.com/andybalholm/cascadia"
	"github.com/yosssi/gohtml"
)

// Compile-time interface verification.
var _ kbsite.Sanitizer = (*Sanitizer)(nil)

// Sanitizer prepares fetched pages for local storage.
type Sanitizer struct{}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize removes nodes matching removeSelectors, appends a <base> tag
// pointing at the page origin and rewrites root-relative href and src
// attributes to absolute URLs. The result is pretty-printed.
func (s *Sanitizer) Sanitize(html string, pageURL string, removeSelectors []string) (string, error) {
	origin, err := originOf(pageURL)
	if err != nil {
		return "", err
	}

	selectors := make([]string, 0, len(removeSelectors))
	for _, selector := range removeSelectors {
		if strings.TrimSpace(selector) == "" {
			continue
		}
		// goquery drops selectors it cannot parse, so reject them first.
		if _, err := cascadia.ParseGroup(selector); err != nil {
			return "", kbsite.Errorf(kbsite.EINVALID, "invalid remove selector %q: %v", selector, err)
		}
		selectors = append(selectors, selector)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", kbsite.Errorf(kbsite.EINVALID, "failed to parse HTML: %v", err)
	}

	for _, selector := range selectors {
		doc.Find(selector).Remove()
	}

	head := doc.Find("head").First()
	if head.Length() == 0 {
		doc.Find("html").First().PrependHtml("<head></head>")
		head = doc.Find("head").First()
	}
	head.AppendHtml(`<base href="` + origin + `"/>`)

	for _, attr := range []string{"href", "src"} {
		doc.Find("[" + attr + "]").Each(func(_ int, sel *goquery.Selection) {
			v := sel.AttrOr(attr, "")
			if strings.HasPrefix(v, "/") && !strings.HasPrefix(v, "//") {
				sel.SetAttr(attr, origin+v)
			}
		})
	}

	out, err := doc.Html()
	if err != nil {
		return "", kbsite.Errorf(kbsite.EINTERNAL, "failed to render HTML: %v", err)
	}

	return gohtml.Format(out), nil
}
