package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/locaflow/locaflow/internal/config"
	"github.com/locaflow/locaflow/internal/database"
	"github.com/locaflow/locaflow/internal/handler"
	"github.com/locaflow/locaflow/internal/logger"
	"github.com/locaflow/locaflow/internal/metrics"
	"github.com/locaflow/locaflow/internal/middleware"
	"github.com/locaflow/locaflow/internal/onboarding"
	"github.com/locaflow/locaflow/internal/queue"
	"github.com/locaflow/locaflow/internal/repository"
	"github.com/locaflow/locaflow/internal/router"
	service "github.com/locaflow/locaflow/internal/service"
)

func main() {
	// A missing .env is fine; production sets real environment variables.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zlog := logger.Get()
	defer func() { _ = zlog.Sync() }()

	db, err := database.Open(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("connect mongodb: %v", err)
	}

	store, err := repository.NewStore(db)
	if err != nil {
		log.Fatalf("wire repositories: %v", err)
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := store.EnsureCollections(ctx); err != nil {
			log.Fatalf("ensure collections: %v", err)
		}
	}

	events := service.NewAuditPublisher(zlog)

	publish := onboarding.NewService(
		store.Users, store.Properties, store.Drafts,
		store.Profiles, store.Preferences, store.Seasonal,
		events, zlog,
	)

	// The consumer keeps reconnecting until shutdown; a dead broker only
	// costs the audit trail, never the API.
	go func() {
		if err := queue.StartAuditConsumer(context.Background(), events.URL, store.Audit, zlog); err != nil {
			zlog.Warn("audit consumer stopped", zap.Error(err))
		}
	}()

	httpMetrics := metrics.NewHTTP(cfg.ServiceName)
	rdb := config.NewRedisClient()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(httpMetrics.Middleware())
	if rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, store.Users, store.Tokens), cfg.JWTSecret)
	router.RegisterOnboarding(e,
		handler.NewOnboardingHandler(store.Users, store.Drafts, publish, httpMetrics), cfg.JWTSecret)
	router.RegisterOwner(e,
		handler.NewOwnerHandler(store.Properties, store.Applications, store.Documents, store.Seasonal), cfg.JWTSecret)
	router.RegisterTenant(e,
		handler.NewTenantHandler(store.Preferences, store.Applications, store.Properties, events), cfg.JWTSecret)

	var publicMW []echo.MiddlewareFunc
	if rdb != nil {
		publicMW = append(publicMW, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}
	router.RegisterPublic(e, handler.NewPublicHandler(store.Properties, store.Seasonal), publicMW...)
	router.RegisterAdmin(e, handler.NewAdminHandler(store.Users, store.Properties, store.Audit), cfg.JWTSecret)

	addr := ":" + cfg.Port
	zlog.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
