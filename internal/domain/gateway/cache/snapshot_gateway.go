package cache

import (
	"context"
	"errors"
	"time"

	"aqi-api/internal/domain/model"
)

// ErrSnapshotNotFound indicates the snapshot key is absent from the cache,
// as opposed to the cache being unreachable.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotGateway stores and retrieves the precomputed global AQI snapshot.
type SnapshotGateway interface {
	GetGlobalSnapshot(ctx context.Context) (model.GlobalSnapshot, error)
	SaveGlobalSnapshot(ctx context.Context, snapshot model.GlobalSnapshot, ttl time.Duration) error
}
