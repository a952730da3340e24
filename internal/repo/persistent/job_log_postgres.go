package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/andreyxaxa/Media-Processor/internal/entity"
	"github.com/andreyxaxa/Media-Processor/pkg/postgres"
	"github.com/andreyxaxa/Media-Processor/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// Tables
	logsTable    = "asset_logs"
	entriesTable = "request_entries"
	eventsTable  = "events"

	// asset_logs columns
	logIDColumn          = "id"
	logOriginalURLColumn = "original_url"
	logCreatedAtColumn   = "created_at"

	// request_entries columns
	entryIDColumn         = "id"
	entryDocumentIDColumn = "document_id"
	entryRequestIDColumn  = "request_id"
	entrySourceColumn     = "source"
	entryConfigColumn     = "processing_config"
	entryCreatedAtColumn  = "created_at"

	// events columns
	eventIDColumn        = "id"
	eventRequestIDColumn = "request_id"
	eventStatusColumn    = "status"
	eventMessageColumn   = "message"
	eventErrorColumn     = "error"
	eventCreatedAtColumn = "created_at"
)

type JobLogRepo struct {
	*postgres.Postgres
}

func NewJobLogRepo(pg *postgres.Postgres) *JobLogRepo {
	return &JobLogRepo{pg}
}

// EnsureDocument creates the log document for originalURL if it does not
// exist yet and returns its id either way. The no-op update on conflict
// makes RETURNING work for the existing row.
func (r *JobLogRepo) EnsureDocument(ctx context.Context, originalURL string) (uuid.UUID, error) {
	sql, args, err := r.Builder.
		Insert(logsTable).
		Columns(logIDColumn, logOriginalURLColumn).
		Values(uuid.New(), originalURL).
		Suffix(fmt.Sprintf(
			"ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s RETURNING %s",
			logOriginalURLColumn, logOriginalURLColumn, logOriginalURLColumn, logIDColumn,
		)).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("JobLogRepo - EnsureDocument - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var id uuid.UUID
	err = executor.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("JobLogRepo - EnsureDocument - executor.QueryRow.Scan: %w", err)
	}

	return id, nil
}

// EnsureEntry appends a request entry once per request id; a repeated
// call with the same request id is a no-op.
func (r *JobLogRepo) EnsureEntry(ctx context.Context, documentID, requestID uuid.UUID, source string, processingConfig []byte) error {
	sql, args, err := r.Builder.
		Insert(entriesTable).
		Columns(
			entryIDColumn,
			entryDocumentIDColumn,
			entryRequestIDColumn,
			entrySourceColumn,
			entryConfigColumn,
		).
		Values(uuid.New(), documentID, requestID, source, processingConfig).
		Suffix(fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", entryRequestIDColumn)).
		ToSql()
	if err != nil {
		return fmt.Errorf("JobLogRepo - EnsureEntry - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("JobLogRepo - EnsureEntry - executor.Exec: %w", err)
	}

	return nil
}

func (r *JobLogRepo) AppendEvent(ctx context.Context, event *entity.Event) error {
	sql, args, err := r.Builder.
		Insert(eventsTable).
		Columns(
			eventRequestIDColumn,
			eventStatusColumn,
			eventMessageColumn,
			eventErrorColumn,
			eventCreatedAtColumn,
		).
		Values(event.RequestID, event.Status, event.Message, event.Error, event.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("JobLogRepo - AppendEvent - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("JobLogRepo - AppendEvent - executor.Exec: %w", err)
	}

	return nil
}

func (r *JobLogRepo) GetDocument(ctx context.Context, originalURL string) (*entity.LogDocument, error) {
	doc, err := r.getDocumentRow(ctx, originalURL)
	if err != nil {
		return nil, err
	}

	entries, err := r.getEntries(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		events, err := r.getEvents(ctx, entry.RequestID)
		if err != nil {
			return nil, err
		}
		entry.Events = events
	}

	doc.Requests = entries

	return doc, nil
}

func (r *JobLogRepo) getDocumentRow(ctx context.Context, originalURL string) (*entity.LogDocument, error) {
	sql, args, err := r.Builder.
		Select(logIDColumn, logOriginalURLColumn, logCreatedAtColumn).
		From(logsTable).
		Where(squirrel.Eq{logOriginalURLColumn: originalURL}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("JobLogRepo - getDocumentRow - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var doc entity.LogDocument
	err = executor.QueryRow(ctx, sql, args...).Scan(&doc.ID, &doc.OriginalURL, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("JobLogRepo - getDocumentRow: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("JobLogRepo - getDocumentRow - executor.QueryRow.Scan: %w", err)
	}

	return &doc, nil
}

func (r *JobLogRepo) getEntries(ctx context.Context, documentID uuid.UUID) ([]*entity.RequestEntry, error) {
	sql, args, err := r.Builder.
		Select(
			entryIDColumn,
			entryDocumentIDColumn,
			entryRequestIDColumn,
			entrySourceColumn,
			entryConfigColumn,
			entryCreatedAtColumn,
		).
		From(entriesTable).
		Where(squirrel.Eq{entryDocumentIDColumn: documentID}).
		OrderBy(entryCreatedAtColumn + " ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("JobLogRepo - getEntries - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("JobLogRepo - getEntries - executor.Query: %w", err)
	}
	defer rows.Close()

	var entries []*entity.RequestEntry
	for rows.Next() {
		var entry entity.RequestEntry
		err = rows.Scan(
			&entry.ID,
			&entry.DocumentID,
			&entry.RequestID,
			&entry.Source,
			&entry.ProcessingConfig,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("JobLogRepo - getEntries - rows.Scan: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("JobLogRepo - getEntries - rows.Err: %w", err)
	}

	return entries, nil
}

func (r *JobLogRepo) getEvents(ctx context.Context, requestID uuid.UUID) ([]*entity.Event, error) {
	sql, args, err := r.Builder.
		Select(
			eventIDColumn,
			eventRequestIDColumn,
			eventStatusColumn,
			eventMessageColumn,
			eventErrorColumn,
			eventCreatedAtColumn,
		).
		From(eventsTable).
		Where(squirrel.Eq{eventRequestIDColumn: requestID}).
		OrderBy(eventIDColumn + " ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("JobLogRepo - getEvents - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("JobLogRepo - getEvents - executor.Query: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		var event entity.Event
		err = rows.Scan(
			&event.ID,
			&event.RequestID,
			&event.Status,
			&event.Message,
			&event.Error,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("JobLogRepo - getEvents - rows.Scan: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("JobLogRepo - getEvents - rows.Err: %w", err)
	}

	return events, nil
}
