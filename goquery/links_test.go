package goquery_test

import (
	"testing"

	"github.com/TheOne1006/kbsite"
	"github.com/TheOne1006/kbsite/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("returns every anchor in document order", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<nav>
	<a href="/docs/intro">Introduction</a>
	<a href="https://other.com/page">Elsewhere</a>
</nav>
<main>
	<a href="/docs/intro">Again</a>
	<a>No href</a>
</main>
</body>
</html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/docs/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/docs/intro",
			"https://other.com/page",
			"https://example.com/docs/intro",
		}, links)
	})

	t.Run("prefixes origin without resolving relative paths", func(t *testing.T) {
		t.Parallel()

		html := `<a href="guide">Guide</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/docs/page")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.comguide"}, links)
	})

	t.Run("skips non-HTTP scheme links", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/a">A</a><a href="javascript:void(0)">JS</a><a href="mailto:me@example.com">Mail</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a"}, links)
	})

	t.Run("skips fragment-only links", func(t *testing.T) {
		t.Parallel()

		html := `<a href="#top">Top</a><a href="/docs/a#intro">A</a><a href=" #x">X</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://x.com/docs/p")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://x.com/docs/a#intro"}, links)
	})

	t.Run("returns empty slice for page without anchors", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.NewLinkExtractor().ExtractLinks("<p>nothing</p>", "https://example.com")

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("returns EINVALID for page URL without host", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewLinkExtractor().ExtractLinks("<a href='/a'>A</a>", "/relative")

		require.Error(t, err)
		assert.Equal(t, kbsite.EINVALID, kbsite.ErrorCode(err))
	})
}
