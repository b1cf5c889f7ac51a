// Command seed creates the admin account and the sample video.
package main

import (
	"context"
	"time"

	"piclips/internal/config"
	"piclips/internal/logger"
	"piclips/internal/repositories"
	"piclips/internal/services/maintenance"

	log "github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	username := config.GetEnv("ADMIN_USERNAME", "admin")
	password := config.GetEnv("ADMIN_PASSWORD", "")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD must be set in environment")
	}

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	svc := maintenance.NewService(repositories.NewStore(db))

	admin, created, err := svc.SeedAdmin(ctx, username, password)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if created {
		log.WithField("username", admin.Username).Info("Admin account created")
	} else {
		log.WithField("username", admin.Username).Info("Admin account already exists")
	}

	video, created, err := svc.SeedSampleVideo(ctx, admin.ID)
	if err != nil {
		log.Fatalf("Failed to seed sample video: %v", err)
	}
	if created {
		log.WithField("video_id", video.ID).Info("Sample video added")
	} else {
		log.Info("Sample video already present")
	}
}
