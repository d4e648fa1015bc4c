package gin

import (
	"strconv"
	"time"

	"github.com/TheOne1006/kbsite"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the server's prometheus collectors.
type Metrics struct {
	requests    *prometheus.HistogramVec
	pagesSynced *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kbsite",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		pagesSynced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kbsite",
			Name:      "pages_synced_total",
			Help:      "Pages processed by site syncs by outcome.",
		}, []string{"status"}),
	}
	reg.MustRegister(m.requests, m.pagesSynced)
	return m
}

// Middleware observes request durations. Unmatched routes are grouped
// under "unmatched" to bound label cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// ObserveSync counts a single sync event.
func (m *Metrics) ObserveSync(ev kbsite.SyncEvent) {
	status := "ok"
	if !ev.OK() {
		status = "failed"
	}
	m.pagesSynced.WithLabelValues(status).Inc()
}
