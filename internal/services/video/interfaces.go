package video

import (
	"context"

	"piclips/internal/models"
	"piclips/internal/storage"
)

// Service defines video lifecycle and like operations
type Service interface {
	Create(ctx context.Context, ownerID string, input CreateInput, upload *storage.Upload) (*models.Video, error)
	Get(ctx context.Context, id string) (*models.Video, error)
	ListPublic(ctx context.Context, page Page) ([]models.Video, error)
	// ListByOwner includes private videos only when viewerID is the owner
	ListByOwner(ctx context.Context, ownerID, viewerID string) ([]models.Video, error)
	ListLiked(ctx context.Context, accountID string) ([]models.Video, error)
	Delete(ctx context.Context, actorID, videoID string) error
	ToggleLike(ctx context.Context, accountID, videoID string) (*models.LikeResult, error)
}
