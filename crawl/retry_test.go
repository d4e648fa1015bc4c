package crawl_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/TheOne1006/kbsite/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flaky fails the first n calls.
func flaky(n int, calls *int) func(context.Context, string) (string, error) {
	return func(_ context.Context, url string) (string, error) {
		*calls++
		if *calls <= n {
			return "", errors.New("503 from " + url)
		}
		return "<html>" + url + "</html>", nil
	}
}

func TestBackoff_Limit(t *testing.T) {
	t.Parallel()

	b := crawl.DefaultBackoff()

	assert.Empty(t, b.Limit(-2))
	assert.Empty(t, b.Limit(0))
	assert.Equal(t, crawl.Backoff{time.Second, 2 * time.Second}, b.Limit(2))
	assert.Len(t, b.Limit(9), 3)
}

func TestBackoff_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("empty backoff tries once", func(t *testing.T) {
		t.Parallel()

		var calls int
		_, err := crawl.Backoff(nil).Fetch(context.Background(), "https://docs.example.com/a", flaky(1, &calls), nil)

		require.EqualError(t, err, "503 from https://docs.example.com/a")
		assert.Equal(t, 1, calls)
	})

	t.Run("succeeds on a later attempt", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var calls int

		html, err := crawl.Backoff{0, 0, 0}.Fetch(context.Background(), "https://docs.example.com/a", flaky(2, &calls), logger)

		require.NoError(t, err)
		assert.Equal(t, "<html>https://docs.example.com/a</html>", html)
		assert.Equal(t, 3, calls)
		assert.Contains(t, buf.String(), "retry=2")
		assert.NotContains(t, buf.String(), "retry=3")
	})

	t.Run("last error when retries run out", func(t *testing.T) {
		t.Parallel()

		var calls int
		_, err := crawl.Backoff{0}.Fetch(context.Background(), "https://docs.example.com/b", flaky(5, &calls), nil)

		require.Error(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("canceled while waiting", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		_, err := crawl.Backoff{time.Hour}.Fetch(ctx, "https://docs.example.com/c", func(context.Context, string) (string, error) {
			cancel()
			return "", errors.New("down")
		}, nil)

		require.ErrorIs(t, err, context.Canceled)
	})
}
