package tip

import (
	"context"
	"time"

	"piclips/internal/models"
)

// Service defines the tip transfer and query operations
type Service interface {
	// Transfer moves req.Amount tokens from the sender to the owner of the video
	Transfer(ctx context.Context, req TransferRequest) (*models.Tip, error)

	// Query operations
	ListTips(ctx context.Context, videoID string) ([]models.Tip, error)
	Summarize(ctx context.Context, videoID string) (*models.TipSummary, error)
}

// SummaryCache stores per-video tip summaries. InvalidateTipSummary bumps the
// video's version; SetTipSummary is a no-op once the version it was given is
// no longer current.
type SummaryCache interface {
	GetTipSummary(ctx context.Context, videoID string) (*models.TipSummary, bool, error)
	TipSummaryVersion(ctx context.Context, videoID string) (int64, error)
	SetTipSummary(ctx context.Context, videoID string, version int64, summary *models.TipSummary) (bool, error)
	InvalidateTipSummary(ctx context.Context, videoID string) error
}

// Notifier announces committed tips to the receiver
type Notifier interface {
	NotifyTip(ctx context.Context, tip *models.Tip) error
}

// MetricsCollector defines the interface for collecting tip metrics
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)
	RecordTip(amount int64)
	RecordCacheHit(key string)
	RecordCacheMiss(key string)
}
