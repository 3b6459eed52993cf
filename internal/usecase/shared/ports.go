package shared

import (
	"context"
	"time"

	"testdrive-hub/internal/domain/testdrive"

	"github.com/google/uuid"
)

// Submit is the history action recorded when a request is first persisted.
const ActionSubmit = "submit"

// HistoryEntry is one applied state change, kept as an audit trail next to the request.
type HistoryEntry struct {
	RequestID uuid.UUID        `json:"request_id"`
	Action    string           `json:"action"`
	From      testdrive.Status `json:"from"`
	To        testdrive.Status `json:"to"`
	Actor     string           `json:"actor"`
	Message   string           `json:"message,omitempty"`
	At        time.Time        `json:"at"`
}

// RequestRepository is the system of record. List results keep insertion order.
type RequestRepository interface {
	Insert(ctx context.Context, req *testdrive.Request, entry HistoryEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*testdrive.Request, error)
	ListBySeller(ctx context.Context, sellerEmail string, status *testdrive.Status) ([]*testdrive.Request, error)
	ListByBuyer(ctx context.Context, buyerEmail string) ([]*testdrive.Request, error)
	// ListScheduledBefore returns confirmed or rescheduled requests whose slot starts at or before t.
	ListScheduledBefore(ctx context.Context, t time.Time, limit int) ([]*testdrive.Request, error)
	// UpdateTransition writes req only if the stored status still equals expected.
	UpdateTransition(ctx context.Context, req *testdrive.Request, expected testdrive.Status, entry HistoryEntry) error
	History(ctx context.Context, id uuid.UUID) ([]HistoryEntry, error)
}

type VehicleDirectory interface {
	FindByID(ctx context.Context, id string) (testdrive.VehicleData, error)
}

// DraftRepository persists opaque draft blobs by key.
type DraftRepository interface {
	Put(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type IdempotencyRecord struct {
	Key         uuid.UUID
	Owner       string
	Status      string
	RequestHash string
	RequestID   *uuid.UUID
	ExpiresAt   time.Time
}

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyRepository interface {
	// Reserve claims the key. It returns nil when the caller now owns it, or the live record otherwise.
	Reserve(ctx context.Context, key uuid.UUID, owner, requestHash string, expiresAt time.Time) (*IdempotencyRecord, error)
	Complete(ctx context.Context, key uuid.UUID, owner string, requestID uuid.UUID) error
	Release(ctx context.Context, key uuid.UUID, owner string) error
}

// Notification topics
const (
	TopicSubmitted   = "test_drive.submitted"
	TopicConfirmed   = "test_drive.confirmed"
	TopicRescheduled = "test_drive.rescheduled"
	TopicDeclined    = "test_drive.declined"
	TopicCancelled   = "test_drive.cancelled"
	TopicCompleted   = "test_drive.completed"
)

// Notification is addressed to the party who did not trigger the change.
type Notification struct {
	Topic        string           `json:"topic"`
	RequestID    uuid.UUID        `json:"request_id"`
	Recipient    string           `json:"recipient"`
	VehicleTitle string           `json:"vehicle_title"`
	Status       testdrive.Status `json:"status"`
	Message      string           `json:"message,omitempty"`
	OccurredAt   time.Time        `json:"occurred_at"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Result labels
const (
	ResultSuccess  = "success"
	ResultInvalid  = "invalid"
	ResultConflict = "conflict"
	ResultError    = "error"
	ResultSkipped  = "skipped"
)

type Metrics interface {
	ObserveSubmission(result string)
	ObserveTransition(action testdrive.Action, result string)
	ObserveDraftSave(result string)
}

type NopMetrics struct{}

func (NopMetrics) ObserveSubmission(string)                   {}
func (NopMetrics) ObserveTransition(testdrive.Action, string) {}
func (NopMetrics) ObserveDraftSave(string)                    {}
