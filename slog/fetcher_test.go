package slog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/TheOne1006/kbsite/mock"
	kbslog "github.com/TheOne1006/kbsite/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonRecords decodes one map per JSON log line.
func jsonRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	page := func(context.Context, string) (string, error) { return "<main>Install</main>", nil }
	down := func(context.Context, string) (string, error) { return "", errors.New("connection refused") }

	t.Run("successful fetch logs at debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		got, err := kbslog.NewLoggingFetcher(&mock.Fetcher{FetchFn: page}, logger).Fetch(context.Background(), "https://go.dev/doc/install")

		require.NoError(t, err)
		assert.Equal(t, "<main>Install</main>", got)
		recs := jsonRecords(t, &buf)
		require.Len(t, recs, 1)
		assert.Equal(t, "DEBUG", recs[0]["level"])
		assert.Equal(t, "fetch", recs[0]["msg"])
		assert.Equal(t, "https://go.dev/doc/install", recs[0]["url"])
		assert.EqualValues(t, 20, recs[0]["bytes"])
		assert.Contains(t, recs[0], "duration")
	})

	t.Run("successful fetch is quiet at info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		_, err := kbslog.NewLoggingFetcher(&mock.Fetcher{FetchFn: page}, logger).Fetch(context.Background(), "https://go.dev/doc/install")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("failed fetch logs a warning", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		_, err := kbslog.NewLoggingFetcher(&mock.Fetcher{FetchFn: down}, logger).Fetch(context.Background(), "https://go.dev/doc/install")

		require.EqualError(t, err, "connection refused")
		recs := jsonRecords(t, &buf)
		require.Len(t, recs, 1)
		assert.Equal(t, "WARN", recs[0]["level"])
		assert.Equal(t, "connection refused", recs[0]["err"])
	})

	t.Run("close reaches the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		closed := 0
		f := kbslog.NewLoggingFetcher(&mock.Fetcher{CloseFn: func() error { closed++; return nil }}, slog.New(slog.DiscardHandler))

		require.NoError(t, f.Close())
		assert.Equal(t, 1, closed)
	})
}
