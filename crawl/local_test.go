package crawl_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/TheOne1006/kbsite"
	"github.com/TheOne1006/kbsite/crawl"
	"github.com/TheOne1006/kbsite/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalURLs(t *testing.T) {
	t.Parallel()

	t.Run("recognises every page written to disk", func(t *testing.T) {
		t.Parallel()

		// Given pages stored in a real site folder
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0755))
		store := fs.NewStore(root)
		site := testSite()
		require.NoError(t, store.CreateFolder(site.KBName, site.FolderName))

		urls := []string{
			"https://x.com/%E4%B8%AD%E6%96%87",
			"https://x.com/a%2Fb",
			"https://x.com/docs/index",
			"https://x.com/docs/",
			"https://x.com",
			"https://x.com/plain",
		}
		files := make(map[string]string, len(urls))
		for _, u := range urls {
			path, err := store.WritePage(context.Background(), site.KBName, site.FolderName, u, u)
			require.NoError(t, err, u)
			files[path] = u
		}

		// When the local URLs are read back
		local, err := crawl.LocalURLs(store, site)
		require.NoError(t, err)

		// Then nothing is left to download in new mode
		assert.Len(t, files, len(urls), "each URL has its own file")
		assert.Len(t, local, len(urls))
		todo, err := kbsite.FilterSiteURLs(urls, kbsite.FilterNew, local)
		require.NoError(t, err)
		assert.Empty(t, todo)
	})

	t.Run("missing folder has no pages", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0755))

		local, err := crawl.LocalURLs(fs.NewStore(root), testSite())

		require.NoError(t, err)
		assert.Empty(t, local)
	})
}
