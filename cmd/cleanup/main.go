// Command cleanup removes comments and likes left behind by deleted videos
// and recomputes the video counters.
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

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	report, err := maintenance.NewService(repositories.NewStore(db)).CleanupComments(ctx)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	if report.OrphanedComments == 0 && report.OrphanedLikes == 0 {
		log.Info("No orphaned comments or likes found")
	}
}
