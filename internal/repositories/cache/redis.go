package cache

import (
	"context"
	"fmt"
	"time"

	"piclips/internal/config"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// Connect returns a ready CacheService, or nil when Redis is disabled or
// unreachable. Callers treat a nil service as "run without cache".
func Connect(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*CacheService, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := NewRedisClient(cfg)
	svc := NewCacheService(client, ttl)
	if err := svc.HealthCheck(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis at %s: %w", cfg.Addr(), err)
	}

	log.WithField("addr", cfg.Addr()).Info("Redis connected")
	return svc, nil
}
