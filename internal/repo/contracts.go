package repo

import (
	"context"

	"github.com/andreyxaxa/Media-Processor/internal/entity"
	"github.com/google/uuid"
)

type (
	// LogRepo persists the per-URL audit trail. Ensure* methods are
	// idempotent: repeat calls with the same keys create nothing new.
	LogRepo interface {
		EnsureDocument(ctx context.Context, originalURL string) (uuid.UUID, error)
		EnsureEntry(ctx context.Context, documentID, requestID uuid.UUID, source string, processingConfig []byte) error
		AppendEvent(ctx context.Context, event *entity.Event) error
		GetDocument(ctx context.Context, originalURL string) (*entity.LogDocument, error)
	}

	OutboxRepo interface {
		Create(ctx context.Context, event *entity.OutboxEvent) error
		GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error
		IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		DeleteOldProcessedAndFailed(ctx context.Context) (int64, error)
	}

	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}
)
