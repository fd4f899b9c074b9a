package db

import "aqi-api/internal/domain/model"

type HealthDBGateway interface {
	Health() model.ComponentHealthStatus
}
