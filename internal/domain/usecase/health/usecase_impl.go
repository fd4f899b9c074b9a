package health

import (
	"aqi-api/internal/domain/gateway/cache"
	"aqi-api/internal/domain/gateway/db"
	"aqi-api/internal/domain/gateway/queue"
	"aqi-api/internal/domain/model"
)

type healthUseCase struct {
	dbGateway    db.HealthDBGateway
	queueGateway queue.HealthGateway
	cacheGateway cache.HealthGateway
}

func NewHealthUseCase(dbGateway db.HealthDBGateway, queueGateway queue.HealthGateway, cacheGateway cache.HealthGateway) UseCase {
	return &healthUseCase{
		dbGateway:    dbGateway,
		queueGateway: queueGateway,
		cacheGateway: cacheGateway,
	}
}

func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	dbHealth := useCase.dbGateway.Health()
	queueHealth := useCase.queueGateway.Health()
	cacheHealth := useCase.cacheGateway.Health()

	overallStatus := model.StatusUp
	if dbHealth.Status != model.StatusUp || queueHealth.Status != model.StatusUp || cacheHealth.Status != model.StatusUp {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Database: dbHealth,
		Queue:    queueHealth,
		Cache:    cacheHealth,
	}
}
