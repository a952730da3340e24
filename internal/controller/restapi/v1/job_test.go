package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andreyxaxa/Media-Processor/internal/dto"
	"github.com/andreyxaxa/Media-Processor/internal/entity"
	"github.com/andreyxaxa/Media-Processor/pkg/metrics"
	"github.com/andreyxaxa/Media-Processor/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(message interface{}, args ...interface{}) {}
func (nopLogger) Info(message string, args ...interface{})       {}
func (nopLogger) Warn(message string, args ...interface{})       {}
func (nopLogger) Error(message interface{}, args ...interface{}) {}
func (nopLogger) Fatal(message interface{}, args ...interface{}) {}

type fakeJobUseCase struct {
	enqueueErr error
	logDoc     *entity.LogDocument
	logErr     error
}

func (f *fakeJobUseCase) Enqueue(_ context.Context, intake dto.IntakeRequest) (entity.Job, error) {
	if f.enqueueErr != nil {
		return entity.Job{}, f.enqueueErr
	}

	return entity.Job{
		RequestID:    uuid.New(),
		Source:       intake.Source,
		OriginalURL:  intake.OriginalURL,
		OverwriteURL: intake.OverwriteURL,
		AssetConfig:  intake.AssetConfig,
	}, nil
}

func (f *fakeJobUseCase) GetLog(context.Context, string) (*entity.LogDocument, error) {
	return f.logDoc, f.logErr
}

func (f *fakeJobUseCase) GetPendingEvents(context.Context, int, int) ([]*entity.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeJobUseCase) MarkAsProcessingBatch(context.Context, []*entity.OutboxEvent) error {
	return nil
}
func (f *fakeJobUseCase) MarkAsProcessedBatch(context.Context, []*entity.OutboxEvent) error {
	return nil
}
func (f *fakeJobUseCase) IncrementRetryCountBatch(context.Context, []*entity.OutboxEvent) error {
	return nil
}
func (f *fakeJobUseCase) MarkMaxRetriesAsFailed(context.Context, int) error { return nil }
func (f *fakeJobUseCase) CleanupOutbox(context.Context) error               { return nil }

// prometheus collectors register globally, one set per test binary
var testMetrics = metrics.New()

func newTestApp(jobs *fakeJobUseCase) *fiber.App {
	app := fiber.New()
	NewJobRoutes(app.Group("/v1"), jobs, testMetrics, nopLogger{})

	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("io.ReadAll: %v", err)
	}

	return string(data)
}

func TestTransformAsset(t *testing.T) {
	app := newTestApp(&fakeJobUseCase{})

	body := `{
		"source": "catalog",
		"originalUrl": "https://assets.example.com/a.png?sig=x",
		"overwriteUrl": "https://assets.example.com/a.png?sig=y",
		"assetConfig": {"imageProps": {"compress": true}}
	}`

	resp := postJSON(t, app, "/v1/transform", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var queued struct {
		Status    string `json:"status"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal([]byte(readBody(t, resp)), &queued); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if queued.Status != "queued" {
		t.Errorf("status = %q, want queued", queued.Status)
	}
	if _, err := uuid.Parse(queued.RequestID); err != nil {
		t.Errorf("requestId %q is not a uuid: %v", queued.RequestID, err)
	}
}

func TestTransformAssetValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "malformed json",
			body:    `{`,
			wantMsg: "invalid request body",
		},
		{
			name:    "missing source",
			body:    `{"originalUrl": "https://a.example.com/x", "overwriteUrl": "https://a.example.com/x"}`,
			wantMsg: "source is required",
		},
		{
			name:    "missing originalUrl",
			body:    `{"source": "catalog", "overwriteUrl": "https://a.example.com/x"}`,
			wantMsg: "originalUrl is required",
		},
		{
			name:    "missing overwriteUrl",
			body:    `{"source": "catalog", "originalUrl": "https://a.example.com/x"}`,
			wantMsg: "overwriteUrl is required",
		},
		{
			name:    "malformed originalUrl",
			body:    `{"source": "catalog", "originalUrl": "not a url", "overwriteUrl": "https://a.example.com/x"}`,
			wantMsg: "originalUrl must be a valid URL",
		},
	}

	app := newTestApp(&fakeJobUseCase{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/v1/transform", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			if body := readBody(t, resp); !strings.Contains(body, tt.wantMsg) {
				t.Errorf("body = %s, want %q", body, tt.wantMsg)
			}
		})
	}
}

func TestTransformAssetDispatchFailure(t *testing.T) {
	app := newTestApp(&fakeJobUseCase{enqueueErr: errors.New("pg down")})

	body := `{
		"source": "catalog",
		"originalUrl": "https://assets.example.com/a.png",
		"overwriteUrl": "https://assets.example.com/a.png"
	}`

	resp := postJSON(t, app, "/v1/transform", body)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
}

func TestGetAssetLog(t *testing.T) {
	doc := &entity.LogDocument{
		ID:          uuid.New(),
		OriginalURL: "https://assets.example.com/a.png",
	}
	app := newTestApp(&fakeJobUseCase{logDoc: doc})

	req := httptest.NewRequest(http.MethodGet, "/v1/logs?originalUrl=https%3A%2F%2Fassets.example.com%2Fa.png", nil)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got entity.LogDocument
	if err := json.Unmarshal([]byte(readBody(t, resp)), &got); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if got.ID != doc.ID {
		t.Errorf("document id = %s, want %s", got.ID, doc.ID)
	}
}

func TestGetAssetLogMissingParam(t *testing.T) {
	app := newTestApp(&fakeJobUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/v1/logs", nil)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetAssetLogNotFound(t *testing.T) {
	app := newTestApp(&fakeJobUseCase{
		logErr: fmt.Errorf("JobUseCase - GetLog: %w", errs.ErrRecordNotFound),
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/logs?originalUrl=https%3A%2F%2Fassets.example.com%2Fmissing.png", nil)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
