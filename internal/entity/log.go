package entity

import (
	"time"

	"github.com/google/uuid"
)

// LogDocument is the audit trail for one original URL. There is exactly
// one document per URL; it outlives the jobs it records.
type LogDocument struct {
	ID          uuid.UUID       `json:"id"`
	OriginalURL string          `json:"original_url"`
	CreatedAt   time.Time       `json:"created_at"`
	Requests    []*RequestEntry `json:"requests,omitempty"`
}

// RequestEntry is the per-job record nested under a LogDocument,
// created at most once per request id.
type RequestEntry struct {
	ID               uuid.UUID `json:"id"`
	DocumentID       uuid.UUID `json:"document_id"`
	RequestID        uuid.UUID `json:"request_id"`
	Source           string    `json:"source"`
	ProcessingConfig []byte    `json:"processing_config,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	Events           []*Event  `json:"events,omitempty"`
}

// Event is one append-only status transition within a RequestEntry.
type Event struct {
	ID        int64     `json:"id"`
	RequestID uuid.UUID `json:"request_id"`
	Status    Status    `json:"status"`
	Message   string    `json:"message"`
	Error     *string   `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
