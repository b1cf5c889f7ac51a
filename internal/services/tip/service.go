package tip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainErrors "piclips/internal/errors"
	"piclips/internal/models"
	"piclips/internal/repositories"

	log "github.com/sirupsen/logrus"
)

type service struct {
	store    repositories.Store
	cache    SummaryCache
	notifier Notifier
	config   Config
	metrics  MetricsCollector
}

// NewService creates a new tip service. cache and notifier are optional.
func NewService(
	store repositories.Store,
	cache SummaryCache,
	notifier Notifier,
	config Config,
	metrics MetricsCollector,
) Service {
	if store == nil {
		panic("store is required")
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		store:    store,
		cache:    cache,
		notifier: notifier,
		config:   config,
		metrics:  metrics,
	}
}

func (s *service) Transfer(ctx context.Context, req TransferRequest) (*models.Tip, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(OpTransfer, time.Since(start))
	}()

	if req.Amount < 1 {
		s.metrics.RecordOperationResult(OpTransfer, "invalid_amount")
		return nil, domainErrors.ErrInvalidTipAmount
	}

	key := strings.TrimSpace(req.IdempotencyKey)
	if key != "" {
		existing, err := s.store.Tips().GetByIdempotencyKey(ctx, req.SenderID, key)
		if err == nil {
			return s.replay(existing, req)
		}
		if !errors.Is(err, repositories.ErrTipNotFound) {
			return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
		}
	}

	var created *models.Tip
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		tip, err := s.transfer(ctx, tx, req, key)
		if err != nil {
			return err
		}
		created = tip
		return nil
	})
	if err != nil {
		if key != "" && errors.Is(err, repositories.ErrDuplicateKey) {
			// a concurrent request with the same key committed first
			winner, lookupErr := s.store.Tips().GetByIdempotencyKey(ctx, req.SenderID, key)
			if lookupErr != nil {
				return nil, fmt.Errorf("failed to load concurrent tip: %w", lookupErr)
			}
			return s.replay(winner, req)
		}
		s.metrics.RecordOperationResult(OpTransfer, resultOf(err))
		return nil, err
	}

	s.afterCommit(ctx, created)

	tip, err := s.store.Tips().GetByID(ctx, created.ID)
	if err != nil {
		log.WithError(err).WithField("tip_id", created.ID).Warn("Failed to resolve tip profiles")
		return created, nil
	}
	return tip, nil
}

// replay answers a retried request with the tip its key already produced.
// A key reused for another video or amount is a conflict, not a retry.
func (s *service) replay(existing *models.Tip, req TransferRequest) (*models.Tip, error) {
	if existing.VideoID != req.VideoID || existing.Amount != req.Amount {
		s.metrics.RecordOperationResult(OpTransfer, resultOf(domainErrors.ErrIdempotencyKeyReused))
		log.WithFields(log.Fields{
			"tip_id":   existing.ID,
			"sender":   req.SenderID,
			"video_id": req.VideoID,
		}).Warn("Idempotency key reused for a different tip")
		return nil, domainErrors.ErrIdempotencyKeyReused
	}
	s.metrics.RecordOperationResult(OpTransfer, "replayed")
	return existing, nil
}

// transfer runs inside the transaction. Every read and write goes through tx.
func (s *service) transfer(ctx context.Context, tx repositories.Store, req TransferRequest, key string) (*models.Tip, error) {
	video, err := tx.Videos().GetByID(ctx, req.VideoID)
	if err != nil {
		if errors.Is(err, repositories.ErrVideoNotFound) {
			return nil, domainErrors.ErrVideoNotFound
		}
		return nil, err
	}

	if video.OwnerID == req.SenderID && !s.config.AllowSelfTip {
		return nil, domainErrors.ErrSelfTip
	}

	if _, err := tx.Accounts().GetByID(ctx, req.SenderID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, domainErrors.ErrSenderNotFound
		}
		return nil, err
	}

	if err := tx.Accounts().Debit(ctx, req.SenderID, req.Amount); err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return nil, domainErrors.ErrInsufficientTokens
		}
		return nil, err
	}

	if err := tx.Accounts().Credit(ctx, video.OwnerID, req.Amount); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, domainErrors.ErrReceiverNotFound
		}
		return nil, err
	}

	tip := &models.Tip{
		SenderID:   req.SenderID,
		ReceiverID: video.OwnerID,
		VideoID:    video.ID,
		Amount:     req.Amount,
		CreatedAt:  s.config.Now(),
	}
	if key != "" {
		tip.IdempotencyKey = &key
	}
	if err := tx.Tips().Create(ctx, tip); err != nil {
		return nil, err
	}
	return tip, nil
}

// afterCommit runs the side effects of a committed transfer. Their failures
// are logged only: the transfer itself has already happened.
func (s *service) afterCommit(ctx context.Context, tip *models.Tip) {
	s.metrics.RecordOperationResult(OpTransfer, "success")
	s.metrics.RecordTip(tip.Amount)

	logger := log.WithFields(log.Fields{
		"tip_id":   tip.ID,
		"video_id": tip.VideoID,
		"sender":   tip.SenderID,
		"receiver": tip.ReceiverID,
		"amount":   tip.Amount,
	})
	logger.Info("Tip transferred")

	if s.cache != nil {
		if err := s.cache.InvalidateTipSummary(ctx, tip.VideoID); err != nil {
			logger.WithError(err).Warn("Failed to invalidate tip summary cache")
		}
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyTip(ctx, tip); err != nil {
			logger.WithError(err).Warn("Failed to publish tip notification")
		}
	}
}

func (s *service) ListTips(ctx context.Context, videoID string) ([]models.Tip, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(OpList, time.Since(start))
	}()

	tips, err := s.store.Tips().ListByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return tips, nil
}

func (s *service) Summarize(ctx context.Context, videoID string) (*models.TipSummary, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(OpSummarize, time.Since(start))
	}()

	// the version is read before the query so a transfer committed after
	// it makes the write below a no-op
	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		summary, found, err := s.cache.GetTipSummary(ctx, videoID)
		if err != nil {
			log.WithError(err).WithField("video_id", videoID).Warn("Tip summary cache read failed")
		} else if found {
			s.metrics.RecordCacheHit(OpSummarize)
			return summary, nil
		}
		s.metrics.RecordCacheMiss(OpSummarize)

		version, err = s.cache.TipSummaryVersion(ctx, videoID)
		if err != nil {
			log.WithError(err).WithField("video_id", videoID).Warn("Tip summary version read failed")
		} else {
			cacheable = true
		}
	}

	summary, err := s.store.Tips().SummarizeByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if cacheable {
		stored, err := s.cache.SetTipSummary(ctx, videoID, version, summary)
		if err != nil {
			log.WithError(err).WithField("video_id", videoID).Warn("Failed to cache tip summary")
		} else if !stored {
			log.WithField("video_id", videoID).Debug("Tip summary changed during read, not cached")
		}
	}
	return summary, nil
}

func resultOf(err error) string {
	var de *domainErrors.DomainError
	if errors.As(err, &de) {
		return strings.ToLower(de.Code)
	}
	return "error"
}
