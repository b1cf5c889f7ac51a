package video

import (
	"context"
	"errors"
	"fmt"

	domainErrors "piclips/internal/errors"
	"piclips/internal/models"
	"piclips/internal/repositories"
	"piclips/internal/storage"
	"piclips/internal/validation"

	log "github.com/sirupsen/logrus"
)

type service struct {
	store repositories.Store
	blobs storage.Storage
}

func NewService(store repositories.Store, blobs storage.Storage) Service {
	if store == nil {
		panic("store is required")
	}
	if blobs == nil {
		panic("storage is required")
	}
	return &service{store: store, blobs: blobs}
}

func (s *service) Create(ctx context.Context, ownerID string, input CreateInput, upload *storage.Upload) (*models.Video, error) {
	if upload == nil || upload.Body == nil {
		return nil, domainErrors.ErrNoVideoFile
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	obj, err := s.blobs.Save(ctx, *upload)
	if err != nil {
		return nil, fmt.Errorf("failed to store video file: %w", err)
	}

	video := &models.Video{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		URL:         obj.URL,
		StorageKey:  obj.Key,
		Thumbnail:   input.Thumbnail,
		Privacy:     input.Privacy,
	}

	err = s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		if err := tx.Videos().Create(ctx, video); err != nil {
			return err
		}
		return tx.Accounts().IncrementVideoCount(ctx, ownerID, 1)
	})
	if err != nil {
		// the row never committed, so the file has no owner
		if delErr := s.blobs.Delete(ctx, obj.Key); delErr != nil {
			log.WithError(delErr).WithField("key", obj.Key).Error("Failed to remove orphaned upload")
		}
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, domainErrors.ErrAccountNotFound
		}
		return nil, err
	}

	log.WithFields(log.Fields{
		"video_id": video.ID,
		"owner_id": ownerID,
		"privacy":  video.Privacy,
	}).Info("Video uploaded")

	return s.Get(ctx, video.ID)
}

func (s *service) Get(ctx context.Context, id string) (*models.Video, error) {
	video, err := s.store.Videos().GetByID(ctx, id)
	if err != nil {
		return nil, mapVideoErr(err)
	}
	return video, nil
}

func (s *service) ListPublic(ctx context.Context, page Page) ([]models.Video, error) {
	if page.Limit > MaxPageSize {
		page.Limit = MaxPageSize
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return s.store.Videos().ListPublic(ctx, page.Limit, page.Offset)
}

func (s *service) ListByOwner(ctx context.Context, ownerID, viewerID string) ([]models.Video, error) {
	return s.store.Videos().ListByOwner(ctx, ownerID, ownerID == viewerID)
}

func (s *service) ListLiked(ctx context.Context, accountID string) ([]models.Video, error) {
	if _, err := s.store.Accounts().GetByID(ctx, accountID); err != nil {
		return nil, mapAccountErr(err)
	}
	return s.store.Videos().ListLikedBy(ctx, accountID)
}

func (s *service) Delete(ctx context.Context, actorID, videoID string) error {
	var storageKey string
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		video, err := tx.Videos().GetByID(ctx, videoID)
		if err != nil {
			return mapVideoErr(err)
		}
		if video.OwnerID != actorID {
			return domainErrors.ErrNotVideoOwner
		}
		storageKey = video.StorageKey

		if err := tx.Videos().DeleteLikes(ctx, videoID); err != nil {
			return err
		}
		if err := tx.Comments().DeleteByVideo(ctx, videoID); err != nil {
			return err
		}
		if err := tx.Videos().Delete(ctx, videoID); err != nil {
			return mapVideoErr(err)
		}
		err = tx.Accounts().IncrementVideoCount(ctx, video.OwnerID, -1)
		if err != nil && !errors.Is(err, repositories.ErrAccountNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger := log.WithFields(log.Fields{"video_id": videoID, "actor_id": actorID})
	if storageKey != "" {
		if err := s.blobs.Delete(ctx, storageKey); err != nil {
			logger.WithError(err).Error("Failed to delete video file")
		}
	}
	logger.Info("Video deleted")
	return nil
}

func (s *service) ToggleLike(ctx context.Context, accountID, videoID string) (*models.LikeResult, error) {
	var result models.LikeResult
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Videos().GetByID(ctx, videoID); err != nil {
			return mapVideoErr(err)
		}
		if _, err := tx.Accounts().GetByID(ctx, accountID); err != nil {
			return mapAccountErr(err)
		}

		removed, err := tx.Videos().RemoveLike(ctx, videoID, accountID)
		if err != nil {
			return err
		}
		if removed {
			result.Likes, err = tx.Videos().IncrementLikeCount(ctx, videoID, -1)
			result.IsLiked = false
			return err
		}

		added, err := tx.Videos().AddLike(ctx, videoID, accountID)
		if err != nil {
			return err
		}
		var delta int64
		if added {
			delta = 1
		}
		result.Likes, err = tx.Videos().IncrementLikeCount(ctx, videoID, delta)
		result.IsLiked = true
		return err
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func mapVideoErr(err error) error {
	if errors.Is(err, repositories.ErrVideoNotFound) {
		return domainErrors.ErrVideoNotFound
	}
	return err
}

func mapAccountErr(err error) error {
	if errors.Is(err, repositories.ErrAccountNotFound) {
		return domainErrors.ErrAccountNotFound
	}
	return err
}
