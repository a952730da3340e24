package job

import (
	"context"
	"fmt"

	"github.com/andreyxaxa/Media-Processor/internal/dto"
	"github.com/andreyxaxa/Media-Processor/internal/entity"
	"github.com/andreyxaxa/Media-Processor/internal/repo"
	"github.com/andreyxaxa/Media-Processor/pkg/logger"
	"github.com/google/uuid"
)

type JobUseCase struct {
	logRepo    repo.LogRepo
	outboxRepo repo.OutboxRepo
	transactor repo.Transactor

	logger logger.Interface
}

func New(
	logRepo repo.LogRepo,
	outboxRepo repo.OutboxRepo,
	transactor repo.Transactor,
	l logger.Interface,
) *JobUseCase {
	return &JobUseCase{
		logRepo:    logRepo,
		outboxRepo: outboxRepo,
		transactor: transactor,
		logger:     l,
	}
}

// Enqueue assigns a request id and durably persists the serialized job
// on the producing side; the relay ships it to the queue afterwards.
// The log document and request entry are created in the same
// transaction, so the audit trail starts the moment the caller is told
// "queued".
func (uc *JobUseCase) Enqueue(ctx context.Context, intake dto.IntakeRequest) (entity.Job, error) {
	j := entity.Job{
		RequestID:    uuid.New(),
		Source:       intake.Source,
		OriginalURL:  intake.OriginalURL,
		OverwriteURL: intake.OverwriteURL,
		AssetConfig:  intake.AssetConfig,
	}

	event, processingConfig, err := uc.createOutboxEvent(j)
	if err != nil {
		return entity.Job{}, fmt.Errorf("JobUseCase - Enqueue - uc.createOutboxEvent: %w", err)
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		// 1. audit trail document + request entry
		documentID, err := uc.logRepo.EnsureDocument(ctx, j.OriginalURL)
		if err != nil {
			return fmt.Errorf("JobUseCase - Enqueue - uc.logRepo.EnsureDocument: %w", err)
		}

		if err := uc.logRepo.EnsureEntry(ctx, documentID, j.RequestID, j.Source, processingConfig); err != nil {
			return fmt.Errorf("JobUseCase - Enqueue - uc.logRepo.EnsureEntry: %w", err)
		}

		// 2. job payload into the outbox
		if err := uc.outboxRepo.Create(ctx, event); err != nil {
			return fmt.Errorf("JobUseCase - Enqueue - uc.outboxRepo.Create: %w", err)
		}

		return nil
	})
	if err != nil {
		return entity.Job{}, fmt.Errorf("JobUseCase - Enqueue - uc.transactor.WithinTransaction: %w", err)
	}

	return j, nil
}

func (uc *JobUseCase) GetLog(ctx context.Context, originalURL string) (*entity.LogDocument, error) {
	doc, err := uc.logRepo.GetDocument(ctx, originalURL)
	if err != nil {
		return nil, fmt.Errorf("JobUseCase - GetLog - uc.logRepo.GetDocument: %w", err)
	}

	return doc, nil
}

func (uc *JobUseCase) GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error) {
	events, err := uc.outboxRepo.GetPendingEvents(ctx, maxRetries, limit)
	if err != nil {
		return nil, fmt.Errorf("JobUseCase - GetPendingEvents - uc.outboxRepo.GetPendingEvents: %w", err)
	}

	return events, nil
}

func (uc *JobUseCase) MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.MarkAsProcessingBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("JobUseCase - MarkAsProcessingBatch - uc.outboxRepo.MarkAsProcessingBatch: %w", err)
	}

	return nil
}

func (uc *JobUseCase) MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.MarkAsProcessedBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("JobUseCase - MarkAsProcessedBatch - uc.outboxRepo.MarkAsProcessedBatch: %w", err)
	}

	return nil
}

func (uc *JobUseCase) IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.IncrementRetryCountBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("JobUseCase - IncrementRetryCountBatch - uc.outboxRepo.IncrementRetryCountBatch: %w", err)
	}

	return nil
}

func (uc *JobUseCase) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	err := uc.outboxRepo.MarkMaxRetriesAsFailed(ctx, maxRetries)
	if err != nil {
		return fmt.Errorf("JobUseCase - MarkMaxRetriesAsFailed - uc.outboxRepo.MarkMaxRetriesAsFailed: %w", err)
	}

	return nil
}

func (uc *JobUseCase) CleanupOutbox(ctx context.Context) error {
	count, err := uc.outboxRepo.DeleteOldProcessedAndFailed(ctx)
	if err != nil {
		return fmt.Errorf("JobUseCase - CleanupOutbox - uc.outboxRepo.DeleteOldProcessedAndFailed: %w", err)
	}

	if count > 0 {
		uc.logger.Info("deleted old outbox events, count = %d", count)
	}

	return nil
}

func eventIDs(events []*entity.OutboxEvent) uuid.UUIDs {
	var IDs uuid.UUIDs

	for _, event := range events {
		IDs = append(IDs, event.ID)
	}

	return IDs
}
