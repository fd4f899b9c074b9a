package cache

import "aqi-api/internal/domain/model"

type HealthGateway interface {
	Health() model.ComponentHealthStatus
}
