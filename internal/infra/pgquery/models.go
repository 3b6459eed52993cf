package pgquery

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type TestDriveRequest struct {
	Seq               int64
	ID                uuid.UUID
	VehicleID         string
	VehicleTitle      string
	VehiclePriceCents int64
	SellerEmail       string
	SellerName        string
	BuyerEmail        string
	BuyerData         []byte
	Status            string
	RequestedAt       time.Time
	RespondedAt       pgtype.Timestamptz
	ResponseMessage   string
	RescheduleDate    pgtype.Text
	RescheduleTime    pgtype.Text
	ScheduledAt       time.Time
	ClosedAt          pgtype.Timestamptz
	UpdatedAt         time.Time
}

type TestDriveRequestEvent struct {
	ID         int64
	RequestID  uuid.UUID
	Action     string
	FromStatus string
	ToStatus   string
	Actor      string
	Message    string
	OccurredAt time.Time
}

type Vehicle struct {
	ID          string
	Title       string
	PriceCents  int64
	SellerEmail string
	SellerName  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type IdempotencyKey struct {
	Key         uuid.UUID
	Owner       string
	RequestHash string
	Status      string
	RequestID   pgtype.UUID
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type NotificationJob struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	RunAt     time.Time
	Attempts  int32
	Status    string
	LastError pgtype.Text
	CreatedAt time.Time
	UpdatedAt time.Time
}
