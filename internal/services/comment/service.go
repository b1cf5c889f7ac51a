package comment

import (
	"context"
	"errors"
	"strings"

	domainErrors "piclips/internal/errors"
	"piclips/internal/models"
	"piclips/internal/repositories"
	"piclips/internal/validation"

	log "github.com/sirupsen/logrus"
)

// Service defines comment operations on videos
type Service interface {
	Add(ctx context.Context, authorID, videoID, content string) (*AddResult, error)
	List(ctx context.Context, videoID string) ([]models.Comment, error)
	Delete(ctx context.Context, actorID, videoID, commentID string) (*DeleteResult, error)
}

// AddResult is the created comment and the video's new comment count
type AddResult struct {
	Comment      *models.Comment `json:"comment"`
	CommentCount int64           `json:"commentCount"`
}

type DeleteResult struct {
	CommentCount int64 `json:"commentCount"`
}

type service struct {
	store repositories.Store
}

func NewService(store repositories.Store) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store}
}

func (s *service) Add(ctx context.Context, authorID, videoID, content string) (*AddResult, error) {
	content = strings.TrimSpace(content)
	v := validation.New()
	v.Required("content", content)
	v.MaxLength("content", content, validation.MaxCommentLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	comment := &models.Comment{VideoID: videoID, AuthorID: authorID, Content: content}
	var count int64
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Videos().GetByID(ctx, videoID); err != nil {
			if errors.Is(err, repositories.ErrVideoNotFound) {
				return domainErrors.ErrVideoNotFound
			}
			return err
		}
		author, err := tx.Accounts().GetByID(ctx, authorID)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return domainErrors.ErrAccountNotFound
			}
			return err
		}

		if err := tx.Comments().Create(ctx, comment); err != nil {
			return err
		}
		count, err = tx.Videos().IncrementCommentCount(ctx, videoID, 1)
		if err != nil {
			return err
		}

		profile := author.Profile()
		comment.Author = &profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"comment_id": comment.ID,
		"video_id":   videoID,
		"author_id":  authorID,
	}).Debug("Comment added")

	return &AddResult{Comment: comment, CommentCount: count}, nil
}

func (s *service) List(ctx context.Context, videoID string) ([]models.Comment, error) {
	return s.store.Comments().ListByVideo(ctx, videoID)
}

func (s *service) Delete(ctx context.Context, actorID, videoID, commentID string) (*DeleteResult, error) {
	var count int64
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		comment, err := tx.Comments().GetByID(ctx, commentID)
		if err != nil {
			if errors.Is(err, repositories.ErrCommentNotFound) {
				return domainErrors.ErrCommentNotFound
			}
			return err
		}
		if comment.VideoID != videoID {
			return domainErrors.ErrCommentNotFound
		}
		if comment.AuthorID != actorID {
			return domainErrors.ErrNotCommentAuthor
		}

		if err := tx.Comments().Delete(ctx, commentID); err != nil {
			if errors.Is(err, repositories.ErrCommentNotFound) {
				return domainErrors.ErrCommentNotFound
			}
			return err
		}

		count, err = tx.Videos().IncrementCommentCount(ctx, videoID, -1)
		if errors.Is(err, repositories.ErrVideoNotFound) {
			// comment outlived its video; the maintenance job reports these
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &DeleteResult{CommentCount: count}, nil
}
