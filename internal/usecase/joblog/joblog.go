// Package joblog maintains the per-(asset, request) audit trail. The
// trail is best-effort by design: a broken log store degrades to
// operational logging only, it never aborts a job.
package joblog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/andreyxaxa/Media-Processor/internal/entity"
	"github.com/andreyxaxa/Media-Processor/internal/repo"
	"github.com/andreyxaxa/Media-Processor/internal/usecase"
	"github.com/andreyxaxa/Media-Processor/pkg/logger"
	"github.com/google/uuid"
)

type JobLog struct {
	logRepo repo.LogRepo
	logger  logger.Interface
}

func New(logRepo repo.LogRepo, l logger.Interface) *JobLog {
	return &JobLog{
		logRepo: logRepo,
		logger:  l,
	}
}

// Open ensures the log document for the job's original URL and the
// request entry for its request id, both idempotently, and returns the
// append handle. A handle is returned even when the store is down.
func (j *JobLog) Open(ctx context.Context, job entity.Job) usecase.EventAppender {
	rl := &RequestLog{
		logRepo:     j.logRepo,
		logger:      j.logger,
		requestID:   job.RequestID,
		originalURL: job.OriginalURL,
	}

	processingConfig, err := json.Marshal(job.AssetConfig)
	if err != nil {
		j.logger.Error(err, "JobLog - Open - json.Marshal")

		return rl
	}

	documentID, err := j.logRepo.EnsureDocument(ctx, job.OriginalURL)
	if err != nil {
		j.logger.Error(err, "JobLog - Open - j.logRepo.EnsureDocument")

		return rl
	}

	err = j.logRepo.EnsureEntry(ctx, documentID, job.RequestID, job.Source, processingConfig)
	if err != nil {
		j.logger.Error(err, "JobLog - Open - j.logRepo.EnsureEntry")
	}

	return rl
}

// RequestLog is bound to one (originalURL, requestID) pair.
type RequestLog struct {
	logRepo repo.LogRepo
	logger  logger.Interface

	requestID   uuid.UUID
	originalURL string
}

func (l *RequestLog) Append(ctx context.Context, status entity.Status, message string, errDetail error) {
	// mirror every event to the operational stream
	if errDetail != nil {
		l.logger.Warn("request=%s url=%s status=%s: %s: %v", l.requestID, l.originalURL, status, message, errDetail)
	} else {
		l.logger.Info("request=%s url=%s status=%s: %s", l.requestID, l.originalURL, status, message)
	}

	event := &entity.Event{
		RequestID: l.requestID,
		Status:    status,
		Message:   message,
		CreatedAt: time.Now(),
	}

	if errDetail != nil {
		s := errDetail.Error()
		event.Error = &s
	}

	err := l.logRepo.AppendEvent(ctx, event)
	if err != nil {
		l.logger.Error(err, "RequestLog - Append - l.logRepo.AppendEvent")
	}
}
