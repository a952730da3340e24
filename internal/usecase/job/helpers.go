package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/andreyxaxa/Media-Processor/internal/entity"
	"github.com/google/uuid"
)

func (uc *JobUseCase) createOutboxEvent(j entity.Job) (*entity.OutboxEvent, []byte, error) {
	payload, err := json.Marshal(j)
	if err != nil {
		return nil, nil, fmt.Errorf("JobUseCase - createOutboxEvent - json.Marshal: %w", err)
	}

	processingConfig, err := json.Marshal(j.AssetConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("JobUseCase - createOutboxEvent - json.Marshal config: %w", err)
	}

	return &entity.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: j.RequestID,
		Payload:     payload,
		Status:      entity.Pending,
		CreatedAt:   time.Now(),
		RetryCount:  0,
	}, processingConfig, nil
}
