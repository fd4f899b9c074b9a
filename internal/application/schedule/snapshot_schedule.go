package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"aqi-api/internal/domain/usecase/cityaqi"
	"aqi-api/pkg/log"
	"aqi-api/pkg/msg"
	"aqi-api/pkg/redis"
)

const snapshotLockName = "global_aqi_snapshot_scheduler"

// SnapshotSchedulerConfig holds configuration for the snapshot scheduler
type SnapshotSchedulerConfig struct {
	CronExpression  string
	LockTTL         time.Duration
	RefreshInterval time.Duration
}

// SnapshotScheduler periodically rebuilds the global AQI snapshot. A
// distributed lock keeps a single instance doing the work.
type SnapshotScheduler struct {
	cron        *cron.Cron
	useCase     cityaqi.UseCase
	redisClient *redis.Client
	config      *SnapshotSchedulerConfig
}

func NewSnapshotScheduler(useCase cityaqi.UseCase, redisClient *redis.Client, cronExpression string, lockTTL int, refreshInterval int) *SnapshotScheduler {
	return &SnapshotScheduler{
		cron:        cron.New(),
		useCase:     useCase,
		redisClient: redisClient,
		config: &SnapshotSchedulerConfig{
			CronExpression:  cronExpression,
			LockTTL:         time.Duration(lockTTL) * time.Second,
			RefreshInterval: time.Duration(refreshInterval) * time.Second,
		},
	}
}

// InitSnapshotScheduleTasks initializes the snapshot refresh schedule with
// distributed locking
func (s *SnapshotScheduler) InitSnapshotScheduleTasks(ctx context.Context) {
	go func() {
		lockOptions := redis.NewLockOptions().
			WithTTL(s.getLockTTL()).
			WithRefreshInterval(s.getRefreshInterval()).
			WithLockNamespace("aqi_schedules")

		lock := redis.NewLock(s.redisClient, snapshotLockName, lockOptions)

		err := lock.Lock(ctx)
		if err != nil {
			log.Errorf("Failed to acquire distributed lock, snapshot scheduler will not be initialized: %v", err)
			return
		}
		redis.RegisterLock(snapshotLockName, lock)

		// Keep the lock alive for the lifetime of this instance
		refreshErrChan := lock.AutoRefresh(ctx)

		cronExpression := s.config.CronExpression

		_, err = s.cron.AddFunc(cronExpression, func() { s.ExecuteScheduledTask(ctx) })
		if err != nil {
			log.Errorf("Failed to initialize snapshot scheduler, cron will not be started: %v", err)
			return
		}

		s.cron.Start()
		log.Infof("Global AQI snapshot scheduler started successfully with cron expression: %s", cronExpression)

		// Stop scheduling if the lock refresh fails or the context ends
		err = <-refreshErrChan

		if s.cron != nil {
			cronCtx := s.cron.Stop()
			<-cronCtx.Done()
		}

		if err != nil {
			log.Errorf("Global AQI snapshot scheduler stopped due to auto-refresh failure: %v", err)
		} else {
			log.Info("Global AQI snapshot scheduler stopped gracefully")
		}
	}()
}

// ExecuteScheduledTask rebuilds the global snapshot once
func (s *SnapshotScheduler) ExecuteScheduledTask(ctx context.Context) {
	requestID := uuid.New().String()

	log.Info(msg.GetMessage("snapshot.refresh-start", requestID), zap.String("request_id", requestID))

	if err := s.useCase.RefreshGlobalSnapshot(ctx, requestID); err != nil {
		log.Error("Failed to refresh global AQI snapshot", zap.String("request_id", requestID), zap.Error(err))
		return
	}

	log.Info("Global AQI snapshot refresh completed successfully", zap.String("request_id", requestID))
}

// Stop gracefully stops the scheduler
func (s *SnapshotScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *SnapshotScheduler) getLockTTL() time.Duration {
	if s.config.LockTTL > 0 {
		return s.config.LockTTL
	}
	return 10 * time.Minute
}

func (s *SnapshotScheduler) getRefreshInterval() time.Duration {
	if s.config.RefreshInterval > 0 {
		return s.config.RefreshInterval
	}
	return 1 * time.Minute
}
