package usecase

import (
	"context"

	"github.com/andreyxaxa/Media-Processor/internal/dto"
	"github.com/andreyxaxa/Media-Processor/internal/entity"
)

type (
	// JobUseCase owns intake-side dispatch (request identity + durable
	// outbox enqueue) and the outbox bookkeeping used by the relay.
	JobUseCase interface {
		Enqueue(ctx context.Context, intake dto.IntakeRequest) (entity.Job, error)
		GetLog(ctx context.Context, originalURL string) (*entity.LogDocument, error)
		GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error
		IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		CleanupOutbox(ctx context.Context) error
	}

	// EventAppender is a request-scoped handle into the audit trail.
	// Appends are best-effort and never fail the caller.
	EventAppender interface {
		Append(ctx context.Context, status entity.Status, message string, errDetail error)
	}

	JobLogUseCase interface {
		Open(ctx context.Context, job entity.Job) EventAppender
	}

	PipelineUseCase interface {
		Run(ctx context.Context, job entity.Job) (entity.AssetKind, error)
	}
)
