// Package maintenance holds the housekeeping jobs: orphan cleanup, counter
// reconciliation and seeding.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"piclips/internal/models"
	"piclips/internal/repositories"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// CleanupReport summarizes one cleanup run.
type CleanupReport struct {
	OrphanedComments int64         `json:"orphanedComments"`
	OrphanedLikes    int64         `json:"orphanedLikes"`
	VideosReconciled int64         `json:"videosReconciled"`
	Duration         time.Duration `json:"duration"`
}

type Service struct {
	store repositories.Store
}

func NewService(store repositories.Store) *Service {
	return &Service{store: store}
}

// CleanupComments removes comments and likes that point at deleted videos,
// then recomputes every video's counters from the remaining rows.
func (s *Service) CleanupComments(ctx context.Context) (*CleanupReport, error) {
	start := time.Now()
	report := &CleanupReport{}

	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		var err error
		if report.OrphanedComments, err = tx.Comments().DeleteOrphans(ctx); err != nil {
			return err
		}
		if report.OrphanedLikes, err = tx.Videos().DeleteOrphanLikes(ctx); err != nil {
			return err
		}
		report.VideosReconciled, err = tx.Videos().ReconcileCounters(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cleanup failed: %w", err)
	}

	report.Duration = time.Since(start)
	log.WithFields(log.Fields{
		"orphaned_comments": report.OrphanedComments,
		"orphaned_likes":    report.OrphanedLikes,
		"videos_reconciled": report.VideosReconciled,
		"duration":          report.Duration,
	}).Info("Cleanup completed")
	return report, nil
}

// Sample video published by the seed command.
var SampleVideo = models.Video{
	Title:       "Sample Video",
	Description: "This is a sample video for testing purposes",
	URL:         "https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
	Thumbnail:   "https://storage.googleapis.com/gtv-videos-bucket/sample/images/ForBiggerBlazes.jpg",
	Privacy:     models.PrivacyPublic,
}

// SeedAdmin creates the admin account unless the username already exists.
// It reports whether an account was created.
func (s *Service) SeedAdmin(ctx context.Context, username, password string) (*models.Account, bool, error) {
	if username == "" || password == "" {
		return nil, false, errors.New("admin username and password are required")
	}

	existing, err := s.store.Accounts().GetByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrAccountNotFound) {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Account{
		Username:     username,
		DisplayName:  username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.store.Accounts().Create(ctx, admin); err != nil {
		return nil, false, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, true, nil
}

// SeedSampleVideo publishes SampleVideo under ownerID unless it is already there.
func (s *Service) SeedSampleVideo(ctx context.Context, ownerID string) (*models.Video, bool, error) {
	videos, err := s.store.Videos().ListByOwner(ctx, ownerID, true)
	if err != nil {
		return nil, false, err
	}
	for i := range videos {
		if videos[i].URL == SampleVideo.URL {
			return &videos[i], false, nil
		}
	}

	video := SampleVideo
	video.OwnerID = ownerID
	err = s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		if err := tx.Videos().Create(ctx, &video); err != nil {
			return err
		}
		return tx.Accounts().IncrementVideoCount(ctx, ownerID, 1)
	})
	if err != nil {
		return nil, false, err
	}
	return &video, true, nil
}
