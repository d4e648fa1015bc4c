package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/TheOne1006/kbsite/cmd/kbsite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"--help"}, {"-h"}, {"help"}} {
		t.Run(args[0], func(t *testing.T) {
			t.Parallel()

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := main.NewMain().Run(context.Background(), args, stdout, stderr)

			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "Usage: kbsite")
			assert.Contains(t, stdout.String(), "Commands:")
			assert.Empty(t, stderr.String())
		})
	}
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{}, stdout, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage: kbsite")
}

func TestRun_UnknownLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := main.NewMain().Run(context.Background(),
		[]string{"--db", filepath.Join(dir, "test.db"), "--loader", "curl", "sites", "docs"},
		&bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "test.db"))
	assert.True(t, os.IsNotExist(statErr), "database file should not be created for invalid flags")
}

func TestRun_Sites(t *testing.T) {
	t.Parallel()

	t.Run("lists no sites for an empty knowledge base", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		root := filepath.Join(dir, "kb")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0755))

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(),
			[]string{"--db", filepath.Join(dir, "test.db"), "--root", root, "sites", "docs"},
			stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `No sites in "docs"`)
	})

	t.Run("fails for an unknown knowledge base", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(),
			[]string{"--db", filepath.Join(dir, "test.db"), "--root", dir, "sites", "missing"},
			&bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "knowledge base missing not found")
	})
}

func TestRun_Endpoints_UnknownSite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "content"), 0755))
	stderr := &bytes.Buffer{}

	// The default rod loader is never started for endpoints.
	err := main.NewMain().Run(context.Background(),
		[]string{"--db", filepath.Join(dir, "test.db"), "--root", dir, "endpoints", "docs", "42"},
		&bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "not found")
}
