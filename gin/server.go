// Package gin exposes site management and sync over HTTP using the gin
// web framework. Responses use a {code, msg, data} envelope; sync progress
// is streamed as newline-delimited JSON.
package gin

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/TheOne1006/kbsite"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server is forcibly shut down.
const ShutdownTimeout = 5 * time.Second

// Server serves the site API. Services must be set before Open.
type Server struct {
	ln      net.Listener
	server  *http.Server
	router  *gin.Engine
	metrics *Metrics

	// Addr is the bind address, e.g. ":7861".
	Addr string

	Extractor kbsite.URLExtractor
	Syncer    kbsite.SiteSyncer
	Manager   kbsite.SiteManager
	Logger    *slog.Logger
}

// NewServer returns a new Server with its routes registered. Metrics are
// registered with reg; a nil reg uses a private registry.
func NewServer(reg *prometheus.Registry) *Server {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		router:  gin.New(),
		metrics: NewMetrics(reg),
	}
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.router.Use(gin.Recovery())
	s.router.Use(s.logRequest())
	s.router.Use(s.metrics.Middleware())

	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	s.registerSiteRoutes(s.router.Group("/knowledge_base/site"))

	return s
}

// Open begins listening on Addr and serves requests in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger().Error("http server stopped", "err", err)
		}
	}()
	s.logger().Info("http server listening", "addr", s.ln.Addr().String())
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP routes a single request. Used by tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}
