package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"piclips/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return GenerateKey(entityType, keyType, value)
}

func GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Tip summary caching.
//
// Each video has a version counter that InvalidateTipSummary bumps. A summary
// computed from the database is stored only if the version read before the
// query is still current, so a transfer committed in between is never masked.
func tipSummaryKey(videoID string) string {
	return GenerateKey("tips", "summary", videoID)
}

func tipSummaryVersionKey(videoID string) string {
	return GenerateKey("tips", "summary-version", videoID)
}

func (s *CacheService) GetTipSummary(ctx context.Context, videoID string) (*models.TipSummary, bool, error) {
	var summary models.TipSummary
	found, err := s.Get(ctx, tipSummaryKey(videoID), &summary)
	if err != nil || !found {
		return nil, false, err
	}
	return &summary, true, nil
}

// TipSummaryVersion returns the current invalidation version of a video's summary.
func (s *CacheService) TipSummaryVersion(ctx context.Context, videoID string) (int64, error) {
	version, err := s.client.Get(ctx, tipSummaryVersionKey(videoID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to read summary version: %w", err)
	}
	return version, nil
}

// SetTipSummary stores summary if version is still current and reports
// whether it did.
func (s *CacheService) SetTipSummary(ctx context.Context, videoID string, version int64, summary *models.TipSummary) (bool, error) {
	if summary == nil {
		return false, errors.New("cannot cache nil summary")
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return false, fmt.Errorf("failed to marshal cache value: %w", err)
	}

	versionKey := tipSummaryVersionKey(videoID)
	stored := false
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, tipSummaryKey(videoID), data, s.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, versionKey)
	if errors.Is(err, redis.TxFailedErr) {
		// invalidated while we were writing
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to cache tip summary: %w", err)
	}
	return stored, nil
}

func (s *CacheService) InvalidateTipSummary(ctx context.Context, videoID string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, tipSummaryVersionKey(videoID))
		pipe.Del(ctx, tipSummaryKey(videoID))
		return nil
	})
	return err
}

// Publish sends a JSON encoded message on a pub/sub channel.
func (s *CacheService) Publish(ctx context.Context, channel string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return s.client.Publish(ctx, channel, data).Err()
}

func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
