package mock

import (
	"context"

	"github.com/TheOne1006/kbsite"
)

var _ kbsite.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of kbsite.PageStore.
type PageStore struct {
	DocPathFn      func(kbName string) (string, error)
	CheckFolderFn  func(kbName, folder string) (string, error)
	CreateFolderFn func(kbName, folder string) error
	RemoveFolderFn func(kbName, folder string) error
	PagePathFn     func(kbName, folder, url string) (string, error)
	WritePageFn    func(ctx context.Context, kbName, folder, url, html string) (string, error)
	RemovePageFn   func(kbName, folder, url string) (string, error)
	ListPagesFn    func(kbName, folder string) ([]string, error)
}

func (s *PageStore) DocPath(kbName string) (string, error) {
	return s.DocPathFn(kbName)
}

func (s *PageStore) CheckFolder(kbName, folder string) (string, error) {
	return s.CheckFolderFn(kbName, folder)
}

func (s *PageStore) CreateFolder(kbName, folder string) error {
	return s.CreateFolderFn(kbName, folder)
}

func (s *PageStore) RemoveFolder(kbName, folder string) error {
	return s.RemoveFolderFn(kbName, folder)
}

func (s *PageStore) PagePath(kbName, folder, url string) (string, error) {
	return s.PagePathFn(kbName, folder, url)
}

func (s *PageStore) WritePage(ctx context.Context, kbName, folder, url, html string) (string, error) {
	return s.WritePageFn(ctx, kbName, folder, url, html)
}

func (s *PageStore) RemovePage(kbName, folder, url string) (string, error) {
	return s.RemovePageFn(kbName, folder, url)
}

func (s *PageStore) ListPages(kbName, folder string) ([]string, error) {
	return s.ListPagesFn(kbName, folder)
}

var _ kbsite.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of kbsite.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, pageURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, pageURL string) ([]string, error) {
	return e.ExtractLinksFn(html, pageURL)
}

var _ kbsite.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of kbsite.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html string, pageURL string, removeSelectors []string) (string, error)
}

func (s *Sanitizer) Sanitize(html string, pageURL string, removeSelectors []string) (string, error) {
	return s.SanitizeFn(html, pageURL, removeSelectors)
}
