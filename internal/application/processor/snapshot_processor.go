package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"aqi-api/internal/domain/model"
	"aqi-api/internal/domain/usecase/cityaqi"
	"aqi-api/pkg/log"
)

type SnapshotProcessor struct {
	cityAQIUseCase cityaqi.UseCase
}

func NewSnapshotProcessor(cityAQIUseCase cityaqi.UseCase) *SnapshotProcessor {
	return &SnapshotProcessor{
		cityAQIUseCase: cityAQIUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface
func (p *SnapshotProcessor) HandleMessage(ctx context.Context, msg types.Message) error {
	if msg.Body == nil {
		return fmt.Errorf("received message without body")
	}

	var refresh model.SnapshotRefreshMessage
	if err := json.Unmarshal([]byte(*msg.Body), &refresh); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %w", err)
	}
	if refresh.City == "" {
		return fmt.Errorf("refresh message %s carries no city", refresh.RequestID)
	}

	log.Infof("Processing snapshot refresh for city %s (request %s)", refresh.City, refresh.RequestID)

	if err := p.cityAQIUseCase.RefreshCitySnapshot(ctx, refresh.City); err != nil {
		return fmt.Errorf("failed to refresh snapshot for %s: %w", refresh.City, err)
	}

	log.Infof("Successfully refreshed snapshot entry for city: %s", refresh.City)
	return nil
}
