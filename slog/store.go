package slog

import (
	"context"
	"log/slog"

	"github.com/TheOne1006/kbsite"
)

// Ensure LoggingPageStore implements kbsite.PageStore.
var _ kbsite.PageStore = (*LoggingPageStore)(nil)

// LoggingPageStore wraps a PageStore and logs filesystem mutations.
// Read-only methods are delegated without logging.
type LoggingPageStore struct {
	kbsite.PageStore
	logger *slog.Logger
}

// NewLoggingPageStore creates a new LoggingPageStore.
func NewLoggingPageStore(next kbsite.PageStore, logger *slog.Logger) *LoggingPageStore {
	return &LoggingPageStore{PageStore: next, logger: logger}
}

// CreateFolder delegates to the wrapped store and logs the folder.
func (s *LoggingPageStore) CreateFolder(kbName, folder string) error {
	err := s.PageStore.CreateFolder(kbName, folder)
	s.logger.Info("create folder", "kb", kbName, "folder", folder, "err", err)
	return err
}

// RemoveFolder delegates to the wrapped store and logs the folder.
func (s *LoggingPageStore) RemoveFolder(kbName, folder string) error {
	err := s.PageStore.RemoveFolder(kbName, folder)
	s.logger.Info("remove folder", "kb", kbName, "folder", folder, "err", err)
	return err
}

// WritePage delegates to the wrapped store and logs the written path.
func (s *LoggingPageStore) WritePage(ctx context.Context, kbName, folder, url, html string) (string, error) {
	path, err := s.PageStore.WritePage(ctx, kbName, folder, url, html)
	s.logger.DebugContext(ctx, "write page",
		"kb", kbName,
		"url", url,
		"path", path,
		"bytes", len(html),
		"err", err,
	)
	return path, err
}

// RemovePage delegates to the wrapped store and logs the removed path.
func (s *LoggingPageStore) RemovePage(kbName, folder, url string) (string, error) {
	path, err := s.PageStore.RemovePage(kbName, folder, url)
	s.logger.Info("remove page", "kb", kbName, "url", url, "path", path, "err", err)
	return path, err
}
