package cache

import (
	"aqi-api/internal/domain/model"
	"aqi-api/pkg/redis"
)

// RedisHealthGateway reports cache health through the shared Redis health checker
type RedisHealthGateway struct {
	checker *redis.HealthChecker
}

var _ HealthGateway = (*RedisHealthGateway)(nil)

func NewRedisHealthGateway(client *redis.Client) *RedisHealthGateway {
	return &RedisHealthGateway{
		checker: redis.NewHealthChecker(client.GetClient(), client.GetConfig()),
	}
}

func (gateway *RedisHealthGateway) Health() model.ComponentHealthStatus {
	check := gateway.checker.HealthCheck()

	status := model.StatusDown
	switch check.Status {
	case redis.StatusUp:
		status = model.StatusUp
	case redis.StatusUnknown:
		status = model.StatusUnknown
	}

	return model.ComponentHealthStatus{
		Status:  status,
		Details: check.Details,
	}
}
