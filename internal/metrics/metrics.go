package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CounterRecounts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "unionhub_counter_recounts_total", Help: "Total denormalized counter recounts"},
		[]string{"counter"},
	)
	LikeToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "unionhub_like_toggles_total", Help: "Total like toggles by resulting action"},
		[]string{"action"},
	)
	HashtagsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "unionhub_hashtags_created_total", Help: "Total hashtags created by the resolver"},
	)
	StatsCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "unionhub_stats_cache_lookups_total", Help: "Stats cache lookups by result"},
		[]string{"result"},
	)
	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "unionhub_ws_connections", Help: "Open notification websocket connections"},
	)
	NotificationsPushed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "unionhub_notifications_pushed_total", Help: "Notifications pushed over websocket"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "unionhub_http_requests_total", Help: "Total HTTP requests"},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unionhub_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CounterRecounts,
			LikeToggles,
			HashtagsCreated,
			StatsCacheLookups,
			WSConnections,
			NotificationsPushed,
			HTTPRequests,
			HTTPDuration,
		)
	})
}

// GinMiddleware records request count and latency keyed by the matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
