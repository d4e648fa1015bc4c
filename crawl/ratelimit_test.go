package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/TheOne1006/kbsite/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// elapsed runs fn and returns how long it took.
func elapsed(fn func()) time.Duration {
	begin := time.Now()
	fn()
	return time.Since(begin)
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("disabled limiter never blocks", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(-1)
		d := elapsed(func() {
			for range 10 {
				require.NoError(t, l.Wait(context.Background(), "docs.example.com"))
			}
		})

		assert.Less(t, d, 50*time.Millisecond)
	})

	t.Run("second request to a host waits one interval", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(10)
		first := elapsed(func() { require.NoError(t, l.Wait(context.Background(), "docs.example.com")) })
		second := elapsed(func() { require.NoError(t, l.Wait(context.Background(), "docs.example.com")) })

		assert.Less(t, first, 50*time.Millisecond)
		assert.GreaterOrEqual(t, second, 80*time.Millisecond)
	})

	t.Run("hosts are limited separately", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(5)
		require.NoError(t, l.Wait(context.Background(), "a.example.com"))
		d := elapsed(func() { require.NoError(t, l.Wait(context.Background(), "b.example.com")) })

		assert.Less(t, d, 50*time.Millisecond)
		assert.Equal(t, 2, l.Hosts())
	})

	t.Run("www prefix and case share a budget", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(10)
		require.NoError(t, l.Wait(context.Background(), "Docs.Example.com"))
		d := elapsed(func() { require.NoError(t, l.Wait(context.Background(), "www.docs.example.com")) })

		assert.GreaterOrEqual(t, d, 80*time.Millisecond)
		assert.Equal(t, 1, l.Hosts())
	})

	t.Run("deadline while waiting", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(0.5)
		require.NoError(t, l.Wait(context.Background(), "docs.example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		assert.Error(t, l.Wait(ctx, "docs.example.com"))
	})

	t.Run("concurrent waiters all pass", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(200)
		var g errgroup.Group
		for range 6 {
			g.Go(func() error {
				return l.Wait(context.Background(), "docs.example.com")
			})
		}

		assert.NoError(t, g.Wait())
		assert.Equal(t, 1, l.Hosts())
	})
}
