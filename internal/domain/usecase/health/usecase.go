package health

import "aqi-api/internal/domain/model"

type UseCase interface {
	CheckHealth() model.HealthResponse
}
