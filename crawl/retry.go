package crawl

import (
	"context"
	"log/slog"
	"time"
)

// Backoff holds the pauses before each retry of a failed page fetch.
// An empty Backoff fetches once.
type Backoff []time.Duration

// DefaultBackoff waits 1s, 2s and then 4s between attempts.
func DefaultBackoff() Backoff {
	return Backoff{time.Second, 2 * time.Second, 4 * time.Second}
}

// Limit keeps at most n retries.
func (b Backoff) Limit(n int) Backoff {
	return b[:min(max(n, 0), len(b))]
}

// Fetch calls fetch until it succeeds or the retries run out, returning the
// error of the final attempt. Retries are logged at warn level when logger
// is not nil.
func (b Backoff) Fetch(ctx context.Context, url string, fetch func(context.Context, string) (string, error), logger *slog.Logger) (string, error) {
	html, err := fetch(ctx, url)
	for i, pause := range b {
		if err == nil {
			return html, nil
		}
		if logger != nil {
			logger.Warn("retrying page", "url", url, "retry", i+1, "of", len(b), "err", err)
		}

		timer := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
		html, err = fetch(ctx, url)
	}
	return html, err
}
