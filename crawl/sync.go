package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/TheOne1006/kbsite"
)

var _ kbsite.SiteSyncer = (*Syncer)(nil)

// Syncer downloads site pages into their knowledge base folder.
// Pages are fetched one at a time.
type Syncer struct {
	Sites       kbsite.SiteService
	Pages       kbsite.PageStore
	Fetcher     kbsite.Fetcher
	Sanitizer   kbsite.Sanitizer
	Indexer     kbsite.EndpointIndexer
	RateLimiter kbsite.DomainLimiter
	RetryDelays Backoff
	Loader      string
	Logger      *slog.Logger
}

// SyncSite downloads the site URLs selected by mode and reports one event
// per URL to emit. Failures of a single URL are reported as events and do
// not stop the batch. Returns ENOTFOUND when no URL needs downloading.
//
// Canceling ctx stops the batch after the current URL; the partial result
// is returned with the context error.
func (s *Syncer) SyncSite(ctx context.Context, kbName string, siteID int64, urls []string, mode string, emit kbsite.SyncEventFunc) (*kbsite.SyncResult, error) {
	if _, err := s.Pages.DocPath(kbName); err != nil {
		return nil, err
	}
	site, err := s.Sites.FindSiteByID(ctx, kbName, siteID)
	if err != nil {
		return nil, err
	}
	filterMode, err := kbsite.ParseFilterMode(mode)
	if err != nil {
		return nil, err
	}

	local, err := LocalURLs(s.Pages, site)
	if err != nil {
		return nil, err
	}
	targets, err := kbsite.FilterSiteURLs(kbsite.Dedupe(urls), filterMode, local)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, kbsite.Errorf(kbsite.ENOTFOUND, "no URLs need updating")
	}

	logger := s.logger().With("kb", kbName, "site_id", siteID)
	logger.Info("sync started", "urls", len(targets), "mode", filterMode)

	result := &kbsite.SyncResult{}
	total := len(targets)
	for i, u := range targets {
		if err := ctx.Err(); err != nil {
			logger.Warn("sync canceled", "finished", i, "total", total)
			return result, err
		}

		begin := time.Now()
		ev := kbsite.SyncEvent{URL: u, Finished: i + 1, Total: total}
		doc, err := s.syncPage(ctx, site, u)
		if err != nil {
			result.Failed++
			ev.Code = 500
			ev.Msg = fmt.Sprintf("%s download failed: %s", u, errorText(err))
			logger.Error("page failed", "url", u, "duration", since(begin), "err", err)
		} else {
			result.Saved++
			ev.Code = 200
			ev.Msg = fmt.Sprintf("%s downloaded", u)
			ev.Doc = doc
			logger.Debug("page saved", "url", u, "doc", doc, "duration", since(begin))
		}
		if emit != nil {
			emit(ev)
		}
	}

	if _, err := s.Sites.TouchSite(ctx, kbName, siteID); err != nil {
		return result, err
	}

	logger.Info("sync finished", "saved", result.Saved, "failed", result.Failed)
	return result, nil
}

// SyncURL downloads a single URL of a site regardless of whether it is
// already stored, and returns the written document path.
func (s *Syncer) SyncURL(ctx context.Context, kbName string, siteID int64, url string) (string, error) {
	if err := kbsite.CheckURLs([]string{url}); err != nil {
		return "", err
	}
	if _, err := s.Pages.DocPath(kbName); err != nil {
		return "", err
	}
	site, err := s.Sites.FindSiteByID(ctx, kbName, siteID)
	if err != nil {
		return "", err
	}

	doc, err := s.syncPage(ctx, site, url)
	if err != nil {
		s.logger().Error("page failed", "kb", kbName, "site_id", siteID, "url", url, "err", err)
		return "", err
	}

	if _, err := s.Sites.TouchSite(ctx, kbName, siteID); err != nil {
		return "", err
	}
	return doc, nil
}

// syncPage fetches, sanitizes, stores and indexes one page.
func (s *Syncer) syncPage(ctx context.Context, site *kbsite.Site, url string) (string, error) {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, hostOf(url)); err != nil {
			return "", err
		}
	}

	html, err := s.RetryDelays.Fetch(ctx, url, s.Fetcher.Fetch, s.Logger)
	if err != nil {
		return "", err
	}

	clean, err := s.Sanitizer.Sanitize(html, url, site.RemoveSelectors)
	if err != nil {
		return "", err
	}

	doc, err := s.Pages.WritePage(ctx, site.KBName, site.FolderName, url, clean)
	if err != nil {
		return "", err
	}

	if s.Indexer != nil {
		e := &kbsite.Endpoint{
			SiteID:   site.ID,
			URL:      url,
			FilePath: doc,
			Loader:   s.Loader,
			Size:     len(clean),
		}
		if err := s.Indexer.Index(ctx, e, clean); err != nil {
			s.logger().Warn("index failed", "url", url, "err", err)
		}
	}

	return doc, nil
}

func (s *Syncer) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// LocalURLs returns the URLs of the pages stored in the site folder.
// A missing folder has no pages.
func LocalURLs(pages kbsite.PageStore, site *kbsite.Site) ([]string, error) {
	files, err := pages.ListPages(site.KBName, site.FolderName)
	if kbsite.ErrorCode(err) == kbsite.ENOTFOUND {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		urls = append(urls, site.LocalURL(f))
	}
	return urls, nil
}

// errorText returns the message of application errors and the full text
// of any other error.
func errorText(err error) string {
	var e *kbsite.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
