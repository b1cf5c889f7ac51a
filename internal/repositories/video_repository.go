package repositories

import (
	"context"
	"fmt"

	"piclips/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoRepository defines the interface for video and like persistence
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	// GetByID loads the video with its owner profile
	GetByID(ctx context.Context, id string) (*models.Video, error)
	// ListPublic returns public videos newest first; limit <= 0 means no limit
	ListPublic(ctx context.Context, limit, offset int) ([]models.Video, error)
	ListByOwner(ctx context.Context, ownerID string, includePrivate bool) ([]models.Video, error)
	ListLikedBy(ctx context.Context, accountID string) ([]models.Video, error)
	Delete(ctx context.Context, id string) error

	// Like membership
	AddLike(ctx context.Context, videoID, accountID string) (bool, error)
	RemoveLike(ctx context.Context, videoID, accountID string) (bool, error)
	DeleteLikes(ctx context.Context, videoID string) error

	// Counters are changed with a single UPDATE so concurrent writers never lose increments
	IncrementLikeCount(ctx context.Context, id string, delta int64) (int64, error)
	IncrementCommentCount(ctx context.Context, id string, delta int64) (int64, error)

	// Maintenance
	DeleteOrphanLikes(ctx context.Context) (int64, error)
	ReconcileCounters(ctx context.Context) (int64, error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(video).Error; err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	var video models.Video
	err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&video).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return &video, nil
}

func (r *videoRepository) ListPublic(ctx context.Context, limit, offset int) ([]models.Video, error) {
	query := r.db.WithContext(ctx).
		Preload("Owner").
		Where("privacy = ?", models.PrivacyPublic).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var videos []models.Video
	if err := query.Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

func (r *videoRepository) ListByOwner(ctx context.Context, ownerID string, includePrivate bool) ([]models.Video, error) {
	query := r.db.WithContext(ctx).Preload("Owner").Where("owner_id = ?", ownerID)
	if !includePrivate {
		query = query.Where("privacy = ?", models.PrivacyPublic)
	}

	var videos []models.Video
	if err := query.Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("failed to list videos by owner: %w", err)
	}
	return videos, nil
}

func (r *videoRepository) ListLikedBy(ctx context.Context, accountID string) ([]models.Video, error) {
	var videos []models.Video
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Joins("JOIN video_likes ON video_likes.video_id = videos.id").
		Where("video_likes.account_id = ?", accountID).
		Order("videos.created_at DESC").
		Find(&videos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list liked videos: %w", err)
	}
	return videos, nil
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Video{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete video: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

// AddLike reports whether a new membership row was inserted.
func (r *videoRepository) AddLike(ctx context.Context, videoID, accountID string) (bool, error) {
	like := models.VideoLike{VideoID: videoID, AccountID: accountID}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if result.Error != nil {
		return false, fmt.Errorf("failed to add like: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// RemoveLike reports whether a membership row was removed.
func (r *videoRepository) RemoveLike(ctx context.Context, videoID, accountID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("video_id = ? AND account_id = ?", videoID, accountID).
		Delete(&models.VideoLike{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove like: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *videoRepository) DeleteLikes(ctx context.Context, videoID string) error {
	if err := r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&models.VideoLike{}).Error; err != nil {
		return fmt.Errorf("failed to delete likes: %w", err)
	}
	return nil
}

func (r *videoRepository) IncrementLikeCount(ctx context.Context, id string, delta int64) (int64, error) {
	return r.incrementCounter(ctx, id, "like_count", delta)
}

func (r *videoRepository) IncrementCommentCount(ctx context.Context, id string, delta int64) (int64, error) {
	return r.incrementCounter(ctx, id, "comment_count", delta)
}

// incrementCounter applies delta to column and returns the value written by
// that same statement. The counter is clamped at zero.
func (r *videoRepository) incrementCounter(ctx context.Context, id, column string, delta int64) (int64, error) {
	expr := gorm.Expr(column+" + ?", delta)
	if delta < 0 {
		expr = gorm.Expr("CASE WHEN "+column+" + ? < 0 THEN 0 ELSE "+column+" + ? END", delta, delta)
	}

	var updated []models.Video
	result := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: column}}}).
		Where("id = ?", id).
		UpdateColumn(column, expr)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 || len(updated) == 0 {
		return 0, ErrVideoNotFound
	}

	if column == "like_count" {
		return updated[0].LikeCount, nil
	}
	return updated[0].CommentCount, nil
}

func (r *videoRepository) DeleteOrphanLikes(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("video_id NOT IN (?)", r.db.Model(&models.Video{}).Select("id")).
		Delete(&models.VideoLike{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete orphan likes: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ReconcileCounters recomputes like_count and comment_count from the rows
// that back them and returns the number of videos whose counters changed.
func (r *videoRepository) ReconcileCounters(ctx context.Context) (int64, error) {
	likes := r.db.Model(&models.VideoLike{}).Select("COUNT(*)").Where("video_likes.video_id = videos.id")
	comments := r.db.Model(&models.Comment{}).Select("COUNT(*)").Where("comments.video_id = videos.id")

	result := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("like_count <> (?) OR comment_count <> (?)", likes, comments).
		UpdateColumns(map[string]interface{}{
			"like_count":    likes,
			"comment_count": comments,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reconcile counters: %w", result.Error)
	}
	return result.RowsAffected, nil
}
