package readability_test

import (
	"testing"

	"github.com/TheOne1006/kbsite"
	"github.com/TheOne1006/kbsite/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := readability.NewExtractor().Extract("")

	require.Error(t, err)
	assert.Equal(t, kbsite.EINVALID, kbsite.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body><article><p>Content</p></article></body>
</html>`

	result, err := readability.NewExtractor().Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Page Title", result.Title)
}

func TestExtractor_KeepsArticleDropsChrome(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Install</title></head>
<body>
<nav><a href="/">Home</a> | <a href="/docs">Docs</a> | <a href="/blog">Blog</a></nav>
<article>
<h2>Installing the client</h2>
<p>Download the latest release and unpack it into a directory on your PATH.
The client needs no further configuration for local knowledge bases.</p>
<p>Remote knowledge bases require an API key set in the environment before the first sync.</p>
</article>
<footer>Copyright 2024 Example Corp</footer>
</body>
</html>`

	result, err := readability.NewExtractor().Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "Download the latest release")
	assert.NotContains(t, result.ContentHTML, "Copyright 2024")
}

func TestExtractor_ResolvesLinksAgainstBase(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Links</title><base href="https://x.com"/></head>
<body><article>
<p>See the <a href="guide">guide</a> for details on configuring a knowledge base, and
read the reference section afterwards to learn every option the sync command supports.</p>
</article></body>
</html>`

	result, err := readability.NewExtractor().Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, `href="https://x.com/guide"`)
}
