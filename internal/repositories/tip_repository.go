package repositories

import (
	"context"
	"fmt"

	"piclips/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TipRepository defines the interface for the tip ledger. Tips are append-only.
type TipRepository interface {
	// Create appends a tip; ErrDuplicateKey when the sender already used the idempotency key
	Create(ctx context.Context, tip *models.Tip) error
	GetByID(ctx context.Context, id string) (*models.Tip, error)
	GetByIdempotencyKey(ctx context.Context, senderID, key string) (*models.Tip, error)
	ListByVideo(ctx context.Context, videoID string) ([]models.Tip, error)
	SummarizeByVideo(ctx context.Context, videoID string) (*models.TipSummary, error)
}

type tipRepository struct {
	db *gorm.DB
}

func NewTipRepository(db *gorm.DB) TipRepository {
	return &tipRepository{db: db}
}

func (r *tipRepository) Create(ctx context.Context, tip *models.Tip) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(tip).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create tip: %w", err)
	}
	return nil
}

func (r *tipRepository) GetByID(ctx context.Context, id string) (*models.Tip, error) {
	var tip models.Tip
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("id = ?", id).
		First(&tip).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTipNotFound
		}
		return nil, fmt.Errorf("failed to get tip: %w", err)
	}
	return &tip, nil
}

func (r *tipRepository) GetByIdempotencyKey(ctx context.Context, senderID, key string) (*models.Tip, error) {
	var tip models.Tip
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("sender_id = ? AND idempotency_key = ?", senderID, key).
		First(&tip).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTipNotFound
		}
		return nil, fmt.Errorf("failed to get tip: %w", err)
	}
	return &tip, nil
}

func (r *tipRepository) ListByVideo(ctx context.Context, videoID string) ([]models.Tip, error) {
	var tips []models.Tip
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		Find(&tips).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tips: %w", err)
	}
	return tips, nil
}

// SummarizeByVideo computes all three figures in one aggregate statement so
// they describe the same snapshot of the ledger.
func (r *tipRepository) SummarizeByVideo(ctx context.Context, videoID string) (*models.TipSummary, error) {
	var summary models.TipSummary
	err := r.db.WithContext(ctx).
		Model(&models.Tip{}).
		Select("COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS tip_count, COUNT(DISTINCT sender_id) AS unique_senders").
		Where("video_id = ?", videoID).
		Scan(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize tips: %w", err)
	}
	return &summary, nil
}
