package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"unionhub/database"
	"unionhub/internal/cache"
	"unionhub/internal/config"
	"unionhub/internal/microservices/http-api/handler"
	"unionhub/internal/microservices/http-api/repository"
	"unionhub/internal/microservices/http-api/service"
	"unionhub/internal/microservices/websocket"
	"unionhub/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogFormat == "text"})
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer database.Close(db)

	// redis is optional; without it stats are computed per request and logout
	// only revokes refresh tokens
	var (
		statsCache service.StatsCache
		denylist   service.TokenDenylist
	)
	if cfg.RedisURL != "" {
		redisOpts, err := cfg.RedisOptions()
		if err != nil {
			logger.Fatal().Err(err).Msg("redis configuration failed")
		}
		redisClient, err := cache.New(redisOpts, cfg.CacheTTL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, continuing without cache")
		} else {
			defer redisClient.Close()
			statsCache = redisClient
			denylist = redisClient
		}
	}

	store := repository.NewStore(db)
	repos := store.Repositories

	pruneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if n, err := repos.RefreshTokens.DeleteExpired(pruneCtx, time.Now()); err != nil {
		logger.Warn().Err(err).Msg("failed to prune expired refresh tokens")
	} else if n > 0 {
		logger.Info().Int64("count", n).Msg("pruned expired refresh tokens")
	}
	cancel()

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := websocket.NewHub()
	go hub.Run(hubCtx)

	services := handler.Services{
		Auth:          service.NewAuthService(store, repos, denylist, cfg),
		Account:       service.NewAccountService(repos),
		Announcements: service.NewAnnouncementService(store, repos, statsCache),
		Comments:      service.NewCommentService(store, repos, statsCache, hub),
		Likes:         service.NewLikeService(store, statsCache),
		Categories:    service.NewCategoryService(repos, statsCache),
		Colleges:      service.NewCollegeService(store, repos),
		Leaders:       service.NewLeaderService(store, repos),
	}

	router := handler.NewRouter(services, handler.RouterOptions{
		CORSOrigins:    cfg.CORSOrigins,
		MetricsEnabled: cfg.PrometheusEnabled,
		AuthRateLimit:  cfg.AuthRateLimit,
		AuthRateBurst:  cfg.AuthRateBurst,
		HealthCheck: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
		TrustedProxies:  cfg.TrustedProxies,
		NotificationHub: hub,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	// hijacked websocket connections are not tracked by Shutdown
	stopHub()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
