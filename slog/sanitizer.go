package slog

import (
	"log/slog"
	"time"

	"github.com/TheOne1006/kbsite"
)

// Ensure LoggingSanitizer implements kbsite.Sanitizer.
var _ kbsite.Sanitizer = (*LoggingSanitizer)(nil)

// LoggingSanitizer wraps a Sanitizer with debug logging.
type LoggingSanitizer struct {
	next   kbsite.Sanitizer
	logger *slog.Logger
}

// NewLoggingSanitizer creates a new LoggingSanitizer.
func NewLoggingSanitizer(next kbsite.Sanitizer, logger *slog.Logger) *LoggingSanitizer {
	return &LoggingSanitizer{next: next, logger: logger}
}

// Sanitize delegates to the wrapped sanitizer and logs size before and after.
func (s *LoggingSanitizer) Sanitize(html string, pageURL string, removeSelectors []string) (out string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("sanitize",
			"url", pageURL,
			"selectors", len(removeSelectors),
			"in", len(html),
			"out", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Sanitize(html, pageURL, removeSelectors)
}
