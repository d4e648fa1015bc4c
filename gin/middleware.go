package gin

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// logRequest logs one line per request once it completes.
func (s *Server) logRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			attrs = append(attrs, "query", q)
		}

		level := slog.LevelInfo
		if strings.HasPrefix(path, "/health") || path == "/metrics" {
			level = slog.LevelDebug
		}
		if len(c.Errors) > 0 {
			level = slog.LevelError
			attrs = append(attrs, "errors", c.Errors.Errors())
		}
		s.logger().Log(c.Request.Context(), level, "http request", attrs...)
	}
}
