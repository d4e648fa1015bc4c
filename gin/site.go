package gin

import (
	"encoding/json"
	"net/http"

	"github.com/TheOne1006/kbsite"
	"github.com/gin-gonic/gin"
)

func (s *Server) registerSiteRoutes(r *gin.RouterGroup) {
	r.POST("/extract_site_urls", s.handleExtractSiteURLs)
	r.POST("/create_site", s.handleCreateSite)
	r.POST("/update_site", s.handleUpdateSite)
	r.POST("/delete_site", s.handleDeleteSite)
	r.POST("/crawl_site_urls", s.handleCrawlSiteURLs)
	r.POST("/crawl_site_url_force", s.handleCrawlSiteURLForce)
	r.POST("/remove_local_site_url", s.handleRemoveLocalSiteURL)
	r.GET("/list_local_site_urls", s.handleListLocalSiteURLs)
	r.GET("/list_kb_sites", s.handleListKBSites)
	r.GET("/list_site_endpoints", s.handleListSiteEndpoints)
}

type extractSiteURLsRequest struct {
	Hostname  string   `json:"hostname" binding:"required"`
	StartURLs []string `json:"start_urls"`
	Pattern   string   `json:"pattern"`
	MaxURLs   int      `json:"max_urls"`
}

func (s *Server) handleExtractSiteURLs(c *gin.Context) {
	var req extractSiteURLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	links, err := s.Extractor.ExtractSiteURLs(c.Request.Context(), req.Hostname, req.StartURLs, req.Pattern, req.MaxURLs)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, "links extracted", gin.H{"links": links})
}

type createSiteRequest struct {
	KBName          string   `json:"knowledge_base_name" binding:"required"`
	Hostname        string   `json:"hostname" binding:"required"`
	StartURLs       []string `json:"start_urls"`
	Pattern         string   `json:"pattern"`
	MaxURLs         int      `json:"max_urls"`
	SiteName        string   `json:"site_name" binding:"required"`
	RemoveSelectors []string `json:"remove_selectors"`
	FolderName      string   `json:"folder_name" binding:"required"`
}

func (s *Server) handleCreateSite(c *gin.Context) {
	var req createSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	} else if !s.checkKB(c, req.KBName) {
		return
	}

	site := &kbsite.Site{
		KBName:          req.KBName,
		SiteName:        req.SiteName,
		FolderName:      req.FolderName,
		Hostname:        req.Hostname,
		StartURLs:       req.StartURLs,
		Pattern:         req.Pattern,
		RemoveSelectors: req.RemoveSelectors,
		MaxURLs:         req.MaxURLs,
	}
	if err := s.Manager.CreateSite(c.Request.Context(), site); err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, "site created", gin.H{"site": site})
}

type updateSiteRequest struct {
	KBName          string    `json:"knowledge_base_name" binding:"required"`
	SiteID          int64     `json:"site_id" binding:"required"`
	Hostname        *string   `json:"hostname"`
	StartURLs       *[]string `json:"start_urls"`
	Pattern         *string   `json:"pattern"`
	MaxURLs         *int      `json:"max_urls"`
	SiteName        *string   `json:"site_name"`
	RemoveSelectors *[]string `json:"remove_selectors"`
}

func (s *Server) handleUpdateSite(c *gin.Context) {
	var req updateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	} else if !s.checkKB(c, req.KBName) {
		return
	}

	upd := kbsite.SiteUpdate{
		SiteName:        req.SiteName,
		Hostname:        req.Hostname,
		StartURLs:       req.StartURLs,
		Pattern:         req.Pattern,
		RemoveSelectors: req.RemoveSelectors,
		MaxURLs:         req.MaxURLs,
	}
	site, err := s.Manager.UpdateSite(c.Request.Context(), req.KBName, req.SiteID, upd)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, "site updated", gin.H{"site": site})
}

type deleteSiteRequest struct {
	KBName        string `json:"knowledge_base_name" binding:"required"`
	SiteID        int64  `json:"site_id" binding:"required"`
	DeleteContent bool   `json:"delete_content"`
}

func (s *Server) handleDeleteSite(c *gin.Context) {
	var req deleteSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	} else if !s.checkKB(c, req.KBName) {
		return
	}

	if err := s.Manager.DeleteSite(c.Request.Context(), req.KBName, req.SiteID, req.DeleteContent); err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, "site deleted", gin.H{"site_id": req.SiteID})
}

type crawlSiteURLsRequest struct {
	KBName       string   `json:"knowledge_base_name" binding:"required"`
	SiteID       int64    `json:"site_id" binding:"required"`
	SiteURLs     []string `json:"site_urls"`
	FilterMethod string   `json:"filter_method"`
}

// handleCrawlSiteURLs streams one JSON line per synced URL. Errors raised
// before the first URL is processed are written as a single envelope line.
func (s *Server) handleCrawlSiteURLs(c *gin.Context) {
	var req crawlSiteURLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	} else if !s.checkKB(c, req.KBName) {
		return
	}

	c.Header("Content-Type", "application/x-ndjson")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)

	enc := json.NewEncoder(c.Writer)
	emitted := 0
	emit := func(ev kbsite.SyncEvent) {
		emitted++
		s.metrics.ObserveSync(ev)
		if err := enc.Encode(ev); err != nil {
			s.logger().Warn("write sync event", "url", ev.URL, "err", err)
			return
		}
		c.Writer.Flush()
	}

	result, err := s.Syncer.SyncSite(c.Request.Context(), req.KBName, req.SiteID, req.SiteURLs, req.FilterMethod, emit)
	if err != nil {
		if emitted == 0 {
			if kbsite.ErrorCode(err) == kbsite.EINTERNAL {
				_ = c.Error(err)
			}
			_ = enc.Encode(errorResponse(err))
			c.Writer.Flush()
			return
		}
		s.logger().Warn("site sync interrupted", "kb", req.KBName, "site_id", req.SiteID, "finished", emitted, "err", err)
		return
	}
	s.logger().Info("site synced", "kb", req.KBName, "site_id", req.SiteID, "saved", result.Saved, "failed", result.Failed)
}

type siteURLRequest struct {
	KBName  string `json:"knowledge_base_name" binding:"required"`
	SiteID  int64  `json:"site_id" binding:"required"`
	SiteURL string `json:"site_url" binding:"required"`
}

func (s *Server) handleCrawlSiteURLForce(c *gin.Context) {
	var req siteURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	} else if !s.checkKB(c, req.KBName) {
		return
	}

	doc, err := s.Syncer.SyncURL(c.Request.Context(), req.KBName, req.SiteID, req.SiteURL)
	if err != nil {
		s.metrics.ObserveSync(kbsite.SyncEvent{Code: http.StatusInternalServerError})
		s.fail(c, err)
		return
	}
	s.metrics.ObserveSync(kbsite.SyncEvent{Code: http.StatusOK})
	s.ok(c, "page updated", gin.H{"doc": doc, "url": req.SiteURL})
}

func (s *Server) handleRemoveLocalSiteURL(c *gin.Context) {
	var req siteURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	} else if !s.checkKB(c, req.KBName) {
		return
	}

	doc, err := s.Manager.RemoveURL(c.Request.Context(), req.KBName, req.SiteID, req.SiteURL)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, "page removed", gin.H{"doc": doc, "url": req.SiteURL})
}

type listLocalSiteURLsQuery struct {
	KBName     string `form:"knowledge_base_name" binding:"required"`
	FolderName string `form:"folder_name" binding:"required"`
}

func (s *Server) handleListLocalSiteURLs(c *gin.Context) {
	var q listLocalSiteURLsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badRequest(c, err)
		return
	} else if !s.checkKB(c, q.KBName) {
		return
	}

	pages, err := s.Manager.ListLocalPages(c.Request.Context(), q.KBName, q.FolderName)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, "local pages", pages)
}

type listKBSitesQuery struct {
	KBName string `form:"knowledge_base_name" binding:"required"`
}

func (s *Server) handleListKBSites(c *gin.Context) {
	var q listKBSitesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badRequest(c, err)
		return
	} else if !s.checkKB(c, q.KBName) {
		return
	}

	sites, err := s.Manager.ListSites(c.Request.Context(), q.KBName)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, "sites", sites)
}

type listSiteEndpointsQuery struct {
	KBName string `form:"knowledge_base_name" binding:"required"`
	SiteID int64  `form:"site_id" binding:"required"`
}

func (s *Server) handleListSiteEndpoints(c *gin.Context) {
	var q listSiteEndpointsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badRequest(c, err)
		return
	} else if !s.checkKB(c, q.KBName) {
		return
	}

	endpoints, err := s.Manager.ListEndpoints(c.Request.Context(), q.KBName, q.SiteID)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, "endpoints", endpoints)
}
