package persistent

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/andreyxaxa/Media-Processor/internal/entity"
	"github.com/andreyxaxa/Media-Processor/pkg/postgres"
	"github.com/andreyxaxa/Media-Processor/pkg/types/errs"
	"github.com/google/uuid"
)

const (
	// Table
	outboxTable = "jobs_outbox"

	// Columns
	outboxIDColumn          = "id"
	outboxAggregateIDColumn = "aggregate_id"
	outboxPayloadColumn     = "payload"
	outboxStatusColumn      = "status"
	outboxCreatedAtColumn   = "created_at"
	outboxProcessedAtColumn = "processed_at"
	outboxRetryCountColumn  = "retry_count"
)

type JobOutboxRepo struct {
	*postgres.Postgres
}

func NewJobOutboxRepo(pg *postgres.Postgres) *JobOutboxRepo {
	return &JobOutboxRepo{pg}
}

func (r *JobOutboxRepo) Create(ctx context.Context, event *entity.OutboxEvent) error {
	sql, args, err := r.Builder.
		Insert(outboxTable).
		Columns(
			outboxIDColumn,
			outboxAggregateIDColumn,
			outboxPayloadColumn,
			outboxStatusColumn,
			outboxCreatedAtColumn,
			outboxRetryCountColumn,
		).
		Values(
			event.ID,
			event.AggregateID,
			event.Payload,
			event.Status,
			event.CreatedAt,
			event.RetryCount,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("JobOutboxRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("JobOutboxRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *JobOutboxRepo) GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error) {
	sql, args, err := r.Builder.
		Select(
			outboxIDColumn,
			outboxAggregateIDColumn,
			outboxPayloadColumn,
			outboxStatusColumn,
			outboxCreatedAtColumn,
			outboxProcessedAtColumn,
			outboxRetryCountColumn,
		).
		From(outboxTable).
		Where(squirrel.And{
			squirrel.Eq{outboxStatusColumn: entity.Pending},
			squirrel.Lt{outboxRetryCountColumn: maxRetries},
		}).
		OrderBy(outboxCreatedAtColumn + " ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("JobOutboxRepo - GetPendingEvents - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("JobOutboxRepo - GetPendingEvents - executor.Query: %w", err)
	}
	defer rows.Close()

	events := make([]*entity.OutboxEvent, 0, limit)
	for rows.Next() {
		var event entity.OutboxEvent
		err = rows.Scan(
			&event.ID,
			&event.AggregateID,
			&event.Payload,
			&event.Status,
			&event.CreatedAt,
			&event.ProcessedAt,
			&event.RetryCount,
		)
		if err != nil {
			return nil, fmt.Errorf("JobOutboxRepo - GetPendingEvents - rows.Scan: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("JobOutboxRepo - GetPendingEvents - rows.Err: %w", err)
	}

	return events, nil
}

func (r *JobOutboxRepo) MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error {
	return r.markBatch(ctx, "MarkAsProcessingBatch", IDs, entity.Processing)
}

func (r *JobOutboxRepo) MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error {
	return r.markBatch(ctx, "MarkAsProcessedBatch", IDs, entity.Processed)
}

func (r *JobOutboxRepo) markBatch(ctx context.Context, op string, IDs uuid.UUIDs, status entity.Status) error {
	now := time.Now()

	sql, args, err := r.Builder.
		Update(outboxTable).
		Set(outboxStatusColumn, status).
		Set(outboxProcessedAtColumn, now).
		Where(squirrel.Eq{outboxIDColumn: IDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("JobOutboxRepo - %s - r.Builder.ToSql: %w", op, err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("JobOutboxRepo - %s - executor.Exec: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("JobOutboxRepo - %s: %w", op, errs.ErrRecordNotFound)
	}

	return nil
}

func (r *JobOutboxRepo) IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error {
	sql, args, err := r.Builder.
		Update(outboxTable).
		Set(outboxRetryCountColumn, squirrel.Expr(outboxRetryCountColumn+" + 1")).
		Set(outboxStatusColumn, entity.Pending).
		Where(squirrel.Eq{outboxIDColumn: IDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("JobOutboxRepo - IncrementRetryCountBatch - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("JobOutboxRepo - IncrementRetryCountBatch - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("JobOutboxRepo - IncrementRetryCountBatch: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *JobOutboxRepo) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	sql, args, err := r.Builder.
		Update(outboxTable).
		Set(outboxStatusColumn, entity.Failed).
		Where(squirrel.And{
			squirrel.Eq{outboxStatusColumn: string(entity.Pending)},
			squirrel.GtOrEq{outboxRetryCountColumn: maxRetries},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("JobOutboxRepo - MarkMaxRetriesAsFailed - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("JobOutboxRepo - MarkMaxRetriesAsFailed - executor.Exec: %w", err)
	}

	return nil
}

func (r *JobOutboxRepo) DeleteOldProcessedAndFailed(ctx context.Context) (int64, error) {
	sql, args, err := r.Builder.
		Delete(outboxTable).
		Where(squirrel.Or{
			squirrel.Eq{outboxStatusColumn: string(entity.Processed)},
			squirrel.Eq{outboxStatusColumn: string(entity.Failed)},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("JobOutboxRepo - DeleteOldProcessedAndFailed - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)
	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("JobOutboxRepo - DeleteOldProcessedAndFailed - executor.Exec: %w", err)
	}

	return tag.RowsAffected(), nil
}
