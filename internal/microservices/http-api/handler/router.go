package handler

import (
	"context"
	"net/http"
	"time"

	"unionhub/internal/metrics"
	"unionhub/internal/microservices/http-api/middleware"
	"unionhub/internal/microservices/http-api/service"
	"unionhub/internal/microservices/websocket"
	"unionhub/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const requestTimeout = 5 * time.Second

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth          service.AuthService
	Account       service.AccountService
	Announcements service.AnnouncementService
	Comments      service.CommentService
	Likes         service.LikeService
	Categories    service.CategoryService
	Colleges      service.CollegeService
	Leaders       service.LeaderService
}

type RouterOptions struct {
	CORSOrigins    []string
	MetricsEnabled bool
	AuthRateLimit  float64
	AuthRateBurst  int
	// HealthCheck reports whether the database is reachable.
	HealthCheck func(ctx context.Context) error
	// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For is honoured.
	// Empty means the client IP is always the socket peer.
	TrustedProxies []string
	// NotificationHub enables the /ws/notifications/ stream when set.
	NotificationHub *websocket.Hub
}

// NewRouter builds the gin engine with every /api route mounted.
func NewRouter(svc Services, opts RouterOptions) *gin.Engine {
	r := gin.New()
	var proxies []string
	if len(opts.TrustedProxies) > 0 {
		proxies = opts.TrustedProxies
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		logger.Warn().Err(err).Msg("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), logger.GinLogger())

	corsCfg := cors.DefaultConfig()
	if len(opts.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = opts.CORSOrigins
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsCfg))

	if opts.MetricsEnabled {
		metrics.Register()
		r.Use(metrics.GinMiddleware())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// mounted outside /api: the request timeout would not apply to a hijacked connection
	if opts.NotificationHub != nil {
		r.GET("/ws/notifications/", websocket.Handler(opts.NotificationHub, svc.Auth, opts.CORSOrigins))
	}

	api := r.Group("/api", middleware.RequestTimeout(requestTimeout), middleware.OptionalAuth(svc.Auth))
	api.GET("/health/", healthHandler(opts.HealthCheck))

	limiter := middleware.NewRateLimiter(opts.AuthRateLimit, opts.AuthRateBurst)
	NewAuthHandler(svc.Auth, svc.Account).RegisterRoutes(api.Group("/auth"), limiter.Middleware())

	announcements := api.Group("/announcements")
	NewAnnouncementHandler(svc.Announcements, svc.Comments, svc.Likes).RegisterRoutes(announcements)
	NewCategoryHandler(svc.Categories).RegisterRoutes(announcements)

	NewCollegeHandler(svc.Colleges).RegisterRoutes(api.Group("/colleges"))
	NewLeaderHandler(svc.Leaders).RegisterRoutes(api.Group("/leaders"))

	return r
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				logger.Warn().Err(err).Msg("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
