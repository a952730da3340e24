package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/andreyxaxa/Media-Processor/internal/dto"
	"github.com/andreyxaxa/Media-Processor/internal/entity"
	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(message interface{}, args ...interface{}) {}
func (nopLogger) Info(message string, args ...interface{})       {}
func (nopLogger) Warn(message string, args ...interface{})       {}
func (nopLogger) Error(message interface{}, args ...interface{}) {}
func (nopLogger) Fatal(message interface{}, args ...interface{}) {}

type fakeLogRepo struct {
	documentID uuid.UUID

	ensuredURL    string
	ensuredReqID  uuid.UUID
	ensuredConfig []byte
}

func (r *fakeLogRepo) EnsureDocument(_ context.Context, originalURL string) (uuid.UUID, error) {
	r.ensuredURL = originalURL

	return r.documentID, nil
}

func (r *fakeLogRepo) EnsureEntry(_ context.Context, _, requestID uuid.UUID, _ string, processingConfig []byte) error {
	r.ensuredReqID = requestID
	r.ensuredConfig = processingConfig

	return nil
}

func (r *fakeLogRepo) AppendEvent(context.Context, *entity.Event) error { return nil }

func (r *fakeLogRepo) GetDocument(context.Context, string) (*entity.LogDocument, error) {
	return &entity.LogDocument{}, nil
}

type fakeOutboxRepo struct {
	created *entity.OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, event *entity.OutboxEvent) error {
	r.created = event

	return nil
}

func (r *fakeOutboxRepo) GetPendingEvents(context.Context, int, int) ([]*entity.OutboxEvent, error) {
	return nil, nil
}
func (r *fakeOutboxRepo) MarkAsProcessingBatch(context.Context, uuid.UUIDs) error    { return nil }
func (r *fakeOutboxRepo) MarkAsProcessedBatch(context.Context, uuid.UUIDs) error     { return nil }
func (r *fakeOutboxRepo) IncrementRetryCountBatch(context.Context, uuid.UUIDs) error { return nil }
func (r *fakeOutboxRepo) MarkMaxRetriesAsFailed(context.Context, int) error          { return nil }
func (r *fakeOutboxRepo) DeleteOldProcessedAndFailed(context.Context) (int64, error) { return 0, nil }

type fakeTransactor struct {
	err error
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error {
	if t.err != nil {
		return t.err
	}

	return f(ctx)
}

func TestEnqueue(t *testing.T) {
	logRepo := &fakeLogRepo{documentID: uuid.New()}
	outboxRepo := &fakeOutboxRepo{}

	uc := New(logRepo, outboxRepo, &fakeTransactor{}, nopLogger{})

	intake := dto.IntakeRequest{
		Source:       "catalog",
		OriginalURL:  "https://assets.example.com/a.png?sig=x",
		OverwriteURL: "https://assets.example.com/a.png?sig=y",
		AssetConfig:  entity.AssetConfig{Image: &entity.ImageProps{Crop: &entity.CropRect{Width: 10, Height: 10}}},
	}

	j, err := uc.Enqueue(context.Background(), intake)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	if j.RequestID == uuid.Nil {
		t.Error("no request id assigned")
	}
	if j.OriginalURL != intake.OriginalURL || j.OverwriteURL != intake.OverwriteURL {
		t.Errorf("job urls = %q %q", j.OriginalURL, j.OverwriteURL)
	}

	// audit trail started in the same transaction
	if logRepo.ensuredURL != intake.OriginalURL {
		t.Errorf("document url = %q, want %q", logRepo.ensuredURL, intake.OriginalURL)
	}
	if logRepo.ensuredReqID != j.RequestID {
		t.Errorf("entry request id = %s, want %s", logRepo.ensuredReqID, j.RequestID)
	}

	// the outbox payload round-trips to the same job
	if outboxRepo.created == nil {
		t.Fatal("no outbox event created")
	}
	if outboxRepo.created.AggregateID != j.RequestID {
		t.Errorf("aggregate id = %s, want %s", outboxRepo.created.AggregateID, j.RequestID)
	}
	if outboxRepo.created.Status != entity.Pending {
		t.Errorf("outbox status = %s, want pending", outboxRepo.created.Status)
	}

	var decoded entity.Job
	if err := json.Unmarshal(outboxRepo.created.Payload, &decoded); err != nil {
		t.Fatalf("json.Unmarshal payload: %v", err)
	}
	if decoded.RequestID != j.RequestID {
		t.Errorf("payload request id = %s, want %s", decoded.RequestID, j.RequestID)
	}
	if decoded.AssetConfig.Image == nil || decoded.AssetConfig.Image.Crop == nil {
		t.Error("payload lost the asset config")
	}
}

func TestEnqueueUniqueRequestIDs(t *testing.T) {
	uc := New(&fakeLogRepo{documentID: uuid.New()}, &fakeOutboxRepo{}, &fakeTransactor{}, nopLogger{})

	intake := dto.IntakeRequest{
		Source:       "catalog",
		OriginalURL:  "https://assets.example.com/a.png",
		OverwriteURL: "https://assets.example.com/a.png",
	}

	first, err := uc.Enqueue(context.Background(), intake)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	second, err := uc.Enqueue(context.Background(), intake)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	if first.RequestID == second.RequestID {
		t.Error("same request id for two submissions of the same asset")
	}
}

func TestEnqueueTransactionFailure(t *testing.T) {
	uc := New(&fakeLogRepo{}, &fakeOutboxRepo{}, &fakeTransactor{err: errors.New("deadlock")}, nopLogger{})

	_, err := uc.Enqueue(context.Background(), dto.IntakeRequest{
		Source:       "catalog",
		OriginalURL:  "https://assets.example.com/a.png",
		OverwriteURL: "https://assets.example.com/a.png",
	})
	if err == nil {
		t.Fatal("expected error when the transaction fails")
	}
}
