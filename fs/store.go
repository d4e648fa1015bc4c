// Package fs stores synced site pages in knowledge base folders on disk.
package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/TheOne1006/kbsite"
)

// ContentDir is the directory under a knowledge base that holds documents.
const ContentDir = "content"

// Ensure Store implements kbsite.PageStore at compile time.
var _ kbsite.PageStore = (*Store)(nil)

// Store implements kbsite.PageStore on the local file system.
// Knowledge bases are directories under the root; each keeps its documents
// in a "content" subdirectory.
type Store struct {
	root string
}

// NewStore creates a new Store rooted at root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// DocPath returns <root>/<kb>/content, creating the content directory
// if the knowledge base exists without one.
func (s *Store) DocPath(kbName string) (string, error) {
	if err := kbsite.ValidateKBName(kbName); err != nil {
		return "", err
	}

	kbDir := filepath.Join(s.root, kbName)
	info, err := os.Stat(kbDir)
	if errors.Is(err, os.ErrNotExist) || (err == nil && !info.IsDir()) {
		return "", kbsite.Errorf(kbsite.ENOTFOUND, "knowledge base %s not found", kbName)
	}
	if err != nil {
		return "", err
	}

	docPath := filepath.Join(kbDir, ContentDir)
	if err := os.MkdirAll(docPath, 0755); err != nil {
		return "", err
	}
	return docPath, nil
}

func (s *Store) folderPath(kbName, folder string) (string, error) {
	docPath, err := s.DocPath(kbName)
	if err != nil {
		return "", err
	}
	folder = strings.Trim(folder, "/ ")
	if err := kbsite.CheckFolderName(folder); err != nil {
		return "", err
	}
	return filepath.Join(docPath, folder), nil
}

// CheckFolder returns the path of a new site folder, failing with EINVALID
// when the folder already exists.
func (s *Store) CheckFolder(kbName, folder string) (string, error) {
	target, err := s.folderPath(kbName, folder)
	if err != nil {
		return "", err
	}
	if _, err := os.Lstat(target); err == nil {
		return "", kbsite.Errorf(kbsite.EINVALID, "folder %s already exists", folder)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	return target, nil
}

// CreateFolder creates an empty site folder.
func (s *Store) CreateFolder(kbName, folder string) error {
	target, err := s.CheckFolder(kbName, folder)
	if err != nil {
		return err
	}
	return os.Mkdir(target, 0755)
}

// RemoveFolder deletes a site folder and every page in it. A missing
// folder is not an error.
func (s *Store) RemoveFolder(kbName, folder string) error {
	target, err := s.folderPath(kbName, folder)
	if err != nil {
		return err
	}
	return os.RemoveAll(target)
}

// PagePath returns the file a page URL is stored in. See kbsite.PagePath.
func (s *Store) PagePath(kbName, folder, pageURL string) (string, error) {
	dir, err := s.folderPath(kbName, folder)
	if err != nil {
		return "", err
	}
	rel, err := kbsite.PagePath(pageURL)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.FromSlash(rel)), nil
}

// WritePage stores html as the page for pageURL, creating parent
// directories, and returns the file path.
func (s *Store) WritePage(ctx context.Context, kbName, folder, pageURL, html string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath, err := s.PagePath(kbName, folder, pageURL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(fullPath, []byte(html), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}

// RemovePage deletes the file stored for pageURL. A missing file is not
// an error.
func (s *Store) RemovePage(kbName, folder, pageURL string) (string, error) {
	fullPath, err := s.PagePath(kbName, folder, pageURL)
	if err != nil {
		return "", err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	return fullPath, nil
}

// ListPages returns the paths of all pages in a site folder, relative to the
// folder with a leading "/". Temporary and hidden files are skipped.
func (s *Store) ListPages(kbName, folder string) ([]string, error) {
	dir, err := s.folderPath(kbName, folder)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return nil, kbsite.Errorf(kbsite.ENOTFOUND, "folder %s not found", folder)
	}

	var pages []string
	visited := make(map[string]bool)
	if err := walkPages(dir, "", visited, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// walkPages collects regular files below dir, following symlinks. rel is
// the slash-separated path of dir relative to the site folder.
func walkPages(dir, rel string, visited map[string]bool, pages *[]string) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if visited[resolved] {
		return nil
	}
	visited[resolved] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if isSkipped(entry.Name()) {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		entryRel := rel + "/" + entry.Name()

		// Stat follows symlinks; dangling links are ignored.
		info, err := os.Stat(full)
		if err != nil {
			if entry.Type()&os.ModeSymlink != 0 {
				continue
			}
			return err
		}

		switch {
		case info.IsDir():
			if err := walkPages(full, entryRel, visited, pages); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			*pages = append(*pages, entryRel)
		}
	}
	return nil
}

// isSkipped reports whether a file name marks a temporary or hidden entry.
func isSkipped(name string) bool {
	name = strings.ToLower(name)
	for _, prefix := range []string{"temp", "tmp", ".", "~$"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
