package kbsite_test

import (
	"testing"

	"github.com/TheOne1006/kbsite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckURLs(t *testing.T) {
	t.Parallel()

	t.Run("accepts http and https URLs", func(t *testing.T) {
		t.Parallel()

		err := kbsite.CheckURLs([]string{"http://x.com", "https://x.com/docs/a"})

		assert.NoError(t, err)
	})

	t.Run("rejects URLs without scheme", func(t *testing.T) {
		t.Parallel()

		for _, u := range []string{"/docs", "x.com", "ftp://x.com", "https://", ""} {
			err := kbsite.CheckURLs([]string{"https://ok.com", u})
			require.Error(t, err, u)
			assert.Equal(t, kbsite.EINVALID, kbsite.ErrorCode(err), u)
		}
	})
}

func TestCheckFolderName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"langchain_cn_doc", "docs-v2", "A1"} {
		assert.NoError(t, kbsite.CheckFolderName(name), name)
	}
	for _, name := range []string{"", "a b", "a/b", "../x", "中文", "a.b"} {
		err := kbsite.CheckFolderName(name)
		require.Error(t, err, name)
		assert.Equal(t, kbsite.EINVALID, kbsite.ErrorCode(err), name)
	}
}

func TestValidateKBName(t *testing.T) {
	t.Parallel()

	assert.NoError(t, kbsite.ValidateKBName("samples"))
	for _, name := range []string{"", "../etc", "a/b", `a\b`} {
		err := kbsite.ValidateKBName(name)
		require.Error(t, err, name)
		assert.Equal(t, kbsite.EINVALID, kbsite.ErrorCode(err), name)
	}
}

func TestParseFilterMode(t *testing.T) {
	t.Parallel()

	cases := map[string]kbsite.FilterMode{
		"all":    kbsite.FilterAll,
		"none":   kbsite.FilterAll,
		"new":    kbsite.FilterNew,
		"append": kbsite.FilterNew,
	}
	for in, want := range cases {
		got, err := kbsite.ParseFilterMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "ALL", "latest"} {
		_, err := kbsite.ParseFilterMode(in)
		require.Error(t, err, in)
		assert.Equal(t, kbsite.EINVALID, kbsite.ErrorCode(err), in)
	}
}

func TestFilterSiteURLs(t *testing.T) {
	t.Parallel()

	candidates := []string{"https://x.com/a", "https://x.com/b", "https://x.com/c"}
	local := []string{"https://x.com/b", "https://x.com/z"}

	t.Run("all returns candidates unchanged", func(t *testing.T) {
		t.Parallel()

		got, err := kbsite.FilterSiteURLs(candidates, kbsite.FilterAll, local)

		require.NoError(t, err)
		assert.Equal(t, candidates, got)
	})

	t.Run("new returns only URLs missing locally", func(t *testing.T) {
		t.Parallel()

		got, err := kbsite.FilterSiteURLs(candidates, kbsite.FilterNew, local)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://x.com/a", "https://x.com/c"}, got)
	})

	t.Run("new with everything local returns nothing", func(t *testing.T) {
		t.Parallel()

		got, err := kbsite.FilterSiteURLs(candidates[:1], kbsite.FilterNew, candidates)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("new compares URLs by the page they are stored as", func(t *testing.T) {
		t.Parallel()

		got, err := kbsite.FilterSiteURLs(
			[]string{"https://x.com", "https://x.com/a#intro", "https://x.com/中文", "https://x.com/b"},
			kbsite.FilterNew,
			[]string{"https://x.com/", "https://x.com/a", "https://x.com/%E4%B8%AD%E6%96%87"},
		)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://x.com/b"}, got)
	})

	t.Run("unknown mode is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := kbsite.FilterSiteURLs(candidates, kbsite.FilterMode("bogus"), local)

		require.Error(t, err)
		assert.Equal(t, kbsite.EINVALID, kbsite.ErrorCode(err))
	})
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	got := kbsite.Dedupe([]string{"b", "a", "b", "c", "a"})

	assert.Equal(t, []string{"b", "a", "c"}, got)
}
