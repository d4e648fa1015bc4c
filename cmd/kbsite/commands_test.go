package main_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/TheOne1006/kbsite"
	main "github.com/TheOne1006/kbsite/cmd/kbsite"
	"github.com/TheOne1006/kbsite/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.DiscardHandler),
	}, stdout, stderr
}

func TestSitesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists sites", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Manager = &mock.SiteManager{
			ListSitesFn: func(ctx context.Context, kbName string) ([]*kbsite.Site, error) {
				return []*kbsite.Site{
					{ID: 1, SiteName: "LangChain", FolderName: "lc", Hostname: "https://www.langchain.asia", SiteVersion: 3},
				}, nil
			},
		}

		err := (&main.SitesCmd{KB: "docs"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "1  LangChain  lc  https://www.langchain.asia  v3\n", stdout.String())
	})

	t.Run("reports errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Manager = &mock.SiteManager{
			ListSitesFn: func(ctx context.Context, kbName string) ([]*kbsite.Site, error) {
				return nil, kbsite.Errorf(kbsite.ENOTFOUND, "knowledge base %s not found", kbName)
			},
		}

		err := (&main.SitesCmd{KB: "docs"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "knowledge base docs not found")
	})
}

func TestEndpointsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists pages with a total", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Manager = &mock.SiteManager{
			ListEndpointsFn: func(ctx context.Context, kbName string, id int64) ([]*kbsite.Endpoint, error) {
				assert.Equal(t, "docs", kbName)
				assert.Equal(t, int64(3), id)
				return []*kbsite.Endpoint{
					{URL: "https://go.dev/doc", Size: 1024, Title: "Docs"},
					{URL: "https://go.dev/ref", Size: 1024, Tokens: 2000},
				}, nil
			},
		}

		err := (&main.EndpointsCmd{KB: "docs", SiteID: 3}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://go.dev/doc  1.0 KB  \"Docs\"\n"+
			"https://go.dev/ref  1.0 KB  ~2k tokens\n"+
			"2 pages, 2.0 KB\n", stdout.String())
	})

	t.Run("no pages", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Manager = &mock.SiteManager{
			ListEndpointsFn: func(ctx context.Context, kbName string, id int64) ([]*kbsite.Endpoint, error) {
				return nil, nil
			},
		}

		require.NoError(t, (&main.EndpointsCmd{KB: "docs", SiteID: 3}).Run(deps))
		assert.Equal(t, "No pages synced for site 3.\n", stdout.String())
	})

	t.Run("unknown site", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Manager = &mock.SiteManager{
			ListEndpointsFn: func(ctx context.Context, kbName string, id int64) ([]*kbsite.Endpoint, error) {
				return nil, kbsite.Errorf(kbsite.ENOTFOUND, "site %d not found", id)
			},
		}

		err := (&main.EndpointsCmd{KB: "docs", SiteID: 3}).Run(deps)

		assert.Equal(t, kbsite.ENOTFOUND, kbsite.ErrorCode(err))
		assert.Equal(t, "error: site 3 not found\n", stderr.String())
	})
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps()
	deps.Extractor = &mock.URLExtractor{
		ExtractSiteURLsFn: func(ctx context.Context, hostname string, startURLs []string, pattern string, maxURLs int) ([]string, error) {
			assert.Equal(t, []string{"/docs"}, startURLs)
			assert.Equal(t, 5, maxURLs)
			return []string{"https://x.com/a", "https://x.com/b"}, nil
		},
	}

	err := (&main.ExtractCmd{Hostname: "https://x.com", StartURLs: []string{"/docs"}, Pattern: ".*", MaxURLs: 5}).Run(deps)

	require.NoError(t, err)
	assert.Equal(t, "https://x.com/a\nhttps://x.com/b\n", stdout.String())
}

func TestSyncCmd_Run(t *testing.T) {
	t.Parallel()

	site := &kbsite.Site{ID: 7, Hostname: "https://x.com", StartURLs: []string{"/docs"}, Pattern: ".*", MaxURLs: 10}

	t.Run("extracts site links then syncs", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps()
		deps.Manager = &mock.SiteManager{
			ListSitesFn: func(ctx context.Context, kbName string) ([]*kbsite.Site, error) {
				return []*kbsite.Site{{ID: 1}, site}, nil
			},
		}
		deps.Extractor = &mock.URLExtractor{
			ExtractSiteURLsFn: func(ctx context.Context, hostname string, startURLs []string, pattern string, maxURLs int) ([]string, error) {
				assert.Equal(t, site.Hostname, hostname)
				assert.Equal(t, site.MaxURLs, maxURLs)
				return []string{"https://x.com/a", "https://x.com/b"}, nil
			},
		}
		deps.Syncer = &mock.SiteSyncer{
			SyncSiteFn: func(ctx context.Context, kbName string, siteID int64, urls []string, mode string, emit kbsite.SyncEventFunc) (*kbsite.SyncResult, error) {
				assert.Equal(t, int64(7), siteID)
				assert.Equal(t, "new", mode)
				emit(kbsite.SyncEvent{Code: 200, URL: urls[0], Finished: 1, Total: 2})
				emit(kbsite.SyncEvent{Code: 500, URL: urls[1], Finished: 2, Total: 2})
				return &kbsite.SyncResult{Saved: 1, Failed: 1}, nil
			},
		}

		err := (&main.SyncCmd{KB: "docs", SiteID: 7, Mode: "new"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Found 2 links")
		assert.Contains(t, stdout.String(), "[1/2] ok")
		assert.Contains(t, stderr.String(), "[2/2] FAIL")
		assert.Contains(t, stdout.String(), "Saved 1 pages, 1 failed")
	})

	t.Run("syncs explicit URLs without extraction", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Syncer = &mock.SiteSyncer{
			SyncSiteFn: func(ctx context.Context, kbName string, siteID int64, urls []string, mode string, emit kbsite.SyncEventFunc) (*kbsite.SyncResult, error) {
				assert.Equal(t, []string{"https://x.com/only"}, urls)
				emit(kbsite.SyncEvent{Code: 200, URL: urls[0], Finished: 1, Total: 1})
				return &kbsite.SyncResult{Saved: 1}, nil
			},
		}

		err := (&main.SyncCmd{KB: "docs", SiteID: 7, Mode: "all", URLs: []string{"https://x.com/only"}}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Saved 1 pages, 0 failed")
	})

	t.Run("unknown site", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Manager = &mock.SiteManager{
			ListSitesFn: func(ctx context.Context, kbName string) ([]*kbsite.Site, error) {
				return []*kbsite.Site{{ID: 1}}, nil
			},
		}

		err := (&main.SyncCmd{KB: "docs", SiteID: 7, Mode: "new"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, kbsite.ENOTFOUND, kbsite.ErrorCode(err))
		assert.Contains(t, stderr.String(), "site 7 not found")
	})

	t.Run("sync error", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Syncer = &mock.SiteSyncer{
			SyncSiteFn: func(ctx context.Context, kbName string, siteID int64, urls []string, mode string, emit kbsite.SyncEventFunc) (*kbsite.SyncResult, error) {
				return nil, errors.New("disk full")
			},
		}

		err := (&main.SyncCmd{KB: "docs", SiteID: 7, Mode: "all", URLs: []string{"https://x.com/a"}}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Internal error.")
	})
}
