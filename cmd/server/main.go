// Package main is the entry point for the API server.
// It loads configuration, connects PostgreSQL and the optional Redis cache,
// wires the services and serves the HTTP API until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"piclips/internal/config"
	"piclips/internal/handlers"
	"piclips/internal/logger"
	"piclips/internal/metrics"
	"piclips/internal/repositories"
	"piclips/internal/repositories/cache"
	"piclips/internal/routes"
	"piclips/internal/services/account"
	"piclips/internal/services/auth"
	"piclips/internal/services/comment"
	"piclips/internal/services/maintenance"
	"piclips/internal/services/notification"
	"piclips/internal/services/tip"
	"piclips/internal/services/video"
	"piclips/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	log "github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.Close(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go repositories.LogPoolStats(ctx, db, time.Minute)

	// Redis is optional: without it summaries are computed on every request
	// and no tip notifications are published.
	var (
		summaryCache tip.SummaryCache
		publisher    notification.Publisher
		redisHealth  handlers.HealthChecker
	)
	connectCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	cacheService, err := cache.Connect(connectCtx, cfg.Redis, cfg.SummaryCacheTTL)
	cancel()
	switch {
	case err != nil:
		log.WithError(err).Warn("Redis unavailable, running without cache and notifications")
	case cacheService != nil:
		defer func() {
			if err := cacheService.Close(); err != nil {
				log.Warnf("Failed to close Redis connection: %v", err)
			}
		}()
		summaryCache = cacheService
		publisher = cacheService
		redisHealth = cacheService
	}

	blobs, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	store := repositories.NewStore(db)

	authService := auth.NewService(store.Accounts(), auth.Config{
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.TokenTTL,
		SignupBalance: cfg.SignupTokenBalance,
	})
	tipService := tip.NewService(
		store,
		summaryCache,
		notification.NewService(publisher),
		tip.Config{AllowSelfTip: cfg.AllowSelfTip},
		metrics.TipCollector{},
	)

	if cfg.CleanupSchedule != "" {
		scheduler, err := maintenance.NewScheduler(maintenance.NewService(store), cfg.CleanupSchedule, 0)
		if err != nil {
			log.Fatalf("Failed to schedule cleanup: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.WithField("schedule", cfg.CleanupSchedule).Info("Cleanup job scheduled")
	}

	app := fiber.New(fiber.Config{
		AppName:   "piclips",
		BodyLimit: 200 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(metrics.Middleware())

	services := routes.Services{
		Auth:          authService,
		Account:       account.NewService(store.Accounts()),
		Video:         video.NewService(store, blobs),
		Comment:       comment.NewService(store),
		Tip:           tipService,
		Database:      store,
		Redis:         redisHealth,
		AuthRateLimit: cfg.AuthRateLimit,
	}
	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		services.UploadDir = cfg.Storage.LocalDir
	}
	routes.SetupRoutes(app, services)

	go func() {
		<-ctx.Done()
		log.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}()

	log.WithField("port", cfg.Port).Info("Starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Errorf("Server stopped: %v", err)
	}
}
