package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/TheOne1006/kbsite"
)

var _ kbsite.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService records how many page URLs each sitemap lookup
// contributes to a site's crawl. Failed lookups are logged as warnings,
// since the crawler falls back to link extraction.
type LoggingSitemapService struct {
	next   kbsite.SitemapService
	logger *slog.Logger
}

func NewLoggingSitemapService(next kbsite.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs logs the hostname searched, whether a site pattern filtered
// the result, and the number of URLs kept.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, hostname string, filter *kbsite.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "sitemap discovery", err,
			slog.String("hostname", hostname),
			slog.Bool("filtered", filter != nil),
			slog.Int("count", len(urls)),
			slog.Duration("duration", time.Since(begin)),
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, hostname, filter)
}

// SitemapURLs logs a sitemap given directly as a start URL.
func (s *LoggingSitemapService) SitemapURLs(ctx context.Context, sitemapURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "sitemap read", err,
			slog.String("sitemap", sitemapURL),
			slog.Int("count", len(urls)),
			slog.Duration("duration", time.Since(begin)),
		)
	}(time.Now())
	return s.next.SitemapURLs(ctx, sitemapURL)
}

func (s *LoggingSitemapService) log(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("err", err.Error()))
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}
