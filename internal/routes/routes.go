// Package routes defines the API routing configuration.
// It mounts every handler under /api and applies authentication where required.
package routes

import (
	"time"

	"piclips/internal/handlers"
	"piclips/internal/metrics"
	"piclips/internal/middleware"
	"piclips/internal/services/account"
	"piclips/internal/services/auth"
	"piclips/internal/services/comment"
	"piclips/internal/services/tip"
	"piclips/internal/services/video"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// Services are the collaborators the HTTP layer is built from.
type Services struct {
	Auth    auth.Service
	Account account.Service
	Video   video.Service
	Comment comment.Service
	Tip     tip.Service

	Database handlers.Pinger
	// Redis is nil when the server runs without a cache
	Redis handlers.HealthChecker

	// UploadDir is served at /uploads when blobs are stored locally
	UploadDir string
	// AuthRateLimit caps register and login attempts per IP and minute; 0 disables it
	AuthRateLimit int
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, s Services) {
	authHandler := handlers.NewAuthHandler(s.Auth)
	accountHandler := handlers.NewAccountHandler(s.Account)
	videoHandler := handlers.NewVideoHandler(s.Video)
	commentHandler := handlers.NewCommentHandler(s.Comment)
	tipHandler := handlers.NewTipHandler(s.Tip)
	healthHandler := handlers.NewHealthHandler(s.Database, s.Redis)

	requireAuth := middleware.NewAuthMiddleware(s.Auth).Handler

	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	if s.UploadDir != "" {
		app.Static("/uploads", s.UploadDir)
	}

	api := app.Group("/api")

	// Auth routes
	authRoutes := api.Group("/auth")
	if s.AuthRateLimit > 0 {
		limit := middleware.RateLimit(s.AuthRateLimit, time.Minute)
		authRoutes.Post("/register", limit, authHandler.Register)
		authRoutes.Post("/login", limit, authHandler.Login)
	} else {
		authRoutes.Post("/register", authHandler.Register)
		authRoutes.Post("/login", authHandler.Login)
	}
	authRoutes.Post("/logout", requireAuth, authHandler.Logout)

	// Account routes
	api.Get("/accounts/me", requireAuth, accountHandler.Me)

	admin := api.Group("/admin", requireAuth, middleware.AdminOnly)
	admin.Post("/accounts/:id/tokens", accountHandler.AdjustTokens)

	// Video routes. Static segments come before /:id.
	videos := api.Group("/videos")
	videos.Get("/", videoHandler.List)
	videos.Post("/", requireAuth, videoHandler.Create)
	videos.Get("/user/:userId", requireAuth, videoHandler.ListByUser)
	videos.Get("/liked/:userId", requireAuth, videoHandler.ListLiked)
	videos.Get("/:id", videoHandler.Get)
	videos.Delete("/:id", requireAuth, videoHandler.Delete)
	videos.Post("/:id/like", requireAuth, videoHandler.ToggleLike)

	// Comments
	videos.Post("/:id/comment", requireAuth, commentHandler.Add)
	videos.Get("/:id/comments", commentHandler.List)
	videos.Delete("/:id/comments/:commentId", requireAuth, commentHandler.Delete)

	// Tips
	videos.Post("/:id/tip", requireAuth, tipHandler.Create)
	videos.Get("/:id/tips", requireAuth, tipHandler.List)
	videos.Get("/:id/tips/summary", requireAuth, tipHandler.Summary)
}
