package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"aqi-api/internal/domain/model"
	"aqi-api/pkg/redis"
)

const globalSnapshotKey = "global"

// RedisSnapshotGateway persists the global snapshot in Redis behind the
// shared cache abstraction.
type RedisSnapshotGateway struct {
	cache *redis.Cache
}

var _ SnapshotGateway = (*RedisSnapshotGateway)(nil)

func NewRedisSnapshotGateway(cache *redis.Cache) *RedisSnapshotGateway {
	return &RedisSnapshotGateway{cache: cache}
}

func (gateway *RedisSnapshotGateway) GetGlobalSnapshot(ctx context.Context) (model.GlobalSnapshot, error) {
	var snapshot model.GlobalSnapshot
	err := gateway.cache.Get(ctx, globalSnapshotKey, &snapshot)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read global snapshot: %w", err)
	}
	return snapshot, nil
}

func (gateway *RedisSnapshotGateway) SaveGlobalSnapshot(ctx context.Context, snapshot model.GlobalSnapshot, ttl time.Duration) error {
	if err := gateway.cache.SetWithTTL(ctx, globalSnapshotKey, snapshot, ttl); err != nil {
		return fmt.Errorf("failed to store global snapshot: %w", err)
	}
	return nil
}
