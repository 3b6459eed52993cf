package pgquery

import (
	"context"
	"time"

	"testdrive-hub/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const testDriveRequestColumns = `seq, id, vehicle_id, vehicle_title, vehicle_price_cents, seller_email, seller_name,
	buyer_email, buyer_data, status, requested_at, responded_at, response_message,
	reschedule_date, reschedule_time, scheduled_at, closed_at, updated_at`

func scanTestDriveRequest(row pgx.Row) (TestDriveRequest, error) {
	var i TestDriveRequest
	err := row.Scan(
		&i.Seq,
		&i.ID,
		&i.VehicleID,
		&i.VehicleTitle,
		&i.VehiclePriceCents,
		&i.SellerEmail,
		&i.SellerName,
		&i.BuyerEmail,
		&i.BuyerData,
		&i.Status,
		&i.RequestedAt,
		&i.RespondedAt,
		&i.ResponseMessage,
		&i.RescheduleDate,
		&i.RescheduleTime,
		&i.ScheduledAt,
		&i.ClosedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectTestDriveRequests(rows pgx.Rows, err error) ([]TestDriveRequest, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TestDriveRequest
	for rows.Next() {
		i, err := scanTestDriveRequest(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertTestDriveRequest = `
INSERT INTO test_drive_requests (
	id, vehicle_id, vehicle_title, vehicle_price_cents, seller_email, seller_name,
	buyer_email, buyer_data, status, requested_at, responded_at, response_message,
	reschedule_date, reschedule_time, scheduled_at, closed_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

type InsertTestDriveRequestParams struct {
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

func (q *Queries) InsertTestDriveRequest(ctx context.Context, db db.DBTX, arg InsertTestDriveRequestParams) error {
	_, err := db.Exec(ctx, insertTestDriveRequest,
		arg.ID,
		arg.VehicleID,
		arg.VehicleTitle,
		arg.VehiclePriceCents,
		arg.SellerEmail,
		arg.SellerName,
		arg.BuyerEmail,
		arg.BuyerData,
		arg.Status,
		arg.RequestedAt,
		arg.RespondedAt,
		arg.ResponseMessage,
		arg.RescheduleDate,
		arg.RescheduleTime,
		arg.ScheduledAt,
		arg.ClosedAt,
		arg.UpdatedAt,
	)
	return err
}

const getTestDriveRequest = `SELECT ` + testDriveRequestColumns + ` FROM test_drive_requests WHERE id = $1`

func (q *Queries) GetTestDriveRequest(ctx context.Context, db db.DBTX, id uuid.UUID) (TestDriveRequest, error) {
	return scanTestDriveRequest(db.QueryRow(ctx, getTestDriveRequest, id))
}

const listTestDriveRequestsBySeller = `SELECT ` + testDriveRequestColumns + ` FROM test_drive_requests
WHERE lower(seller_email) = lower($1) AND ($2::text IS NULL OR status = $2)
ORDER BY seq`

func (q *Queries) ListTestDriveRequestsBySeller(ctx context.Context, db db.DBTX, sellerEmail string, status pgtype.Text) ([]TestDriveRequest, error) {
	return collectTestDriveRequests(db.Query(ctx, listTestDriveRequestsBySeller, sellerEmail, status))
}

const listTestDriveRequestsByBuyer = `SELECT ` + testDriveRequestColumns + ` FROM test_drive_requests
WHERE lower(buyer_email) = lower($1)
ORDER BY seq`

func (q *Queries) ListTestDriveRequestsByBuyer(ctx context.Context, db db.DBTX, buyerEmail string) ([]TestDriveRequest, error) {
	return collectTestDriveRequests(db.Query(ctx, listTestDriveRequestsByBuyer, buyerEmail))
}

const listTestDriveRequestsScheduledBefore = `SELECT ` + testDriveRequestColumns + ` FROM test_drive_requests
WHERE status IN ('confirmed', 'rescheduled') AND scheduled_at <= $1
ORDER BY scheduled_at, seq
LIMIT $2`

func (q *Queries) ListTestDriveRequestsScheduledBefore(ctx context.Context, db db.DBTX, before time.Time, limit int32) ([]TestDriveRequest, error) {
	return collectTestDriveRequests(db.Query(ctx, listTestDriveRequestsScheduledBefore, before, limit))
}

const updateTestDriveRequestTransition = `
UPDATE test_drive_requests SET
	status = $2,
	responded_at = $3,
	response_message = $4,
	reschedule_date = $5,
	reschedule_time = $6,
	scheduled_at = $7,
	closed_at = $8,
	updated_at = $9
WHERE id = $1 AND status = $10`

type UpdateTestDriveRequestTransitionParams struct {
	ID              uuid.UUID
	Status          string
	RespondedAt     pgtype.Timestamptz
	ResponseMessage string
	RescheduleDate  pgtype.Text
	RescheduleTime  pgtype.Text
	ScheduledAt     time.Time
	ClosedAt        pgtype.Timestamptz
	UpdatedAt       time.Time
	ExpectedStatus  string
}

// UpdateTestDriveRequestTransition returns the number of rows written; zero means the status moved on.
func (q *Queries) UpdateTestDriveRequestTransition(ctx context.Context, db db.DBTX, arg UpdateTestDriveRequestTransitionParams) (int64, error) {
	tag, err := db.Exec(ctx, updateTestDriveRequestTransition,
		arg.ID,
		arg.Status,
		arg.RespondedAt,
		arg.ResponseMessage,
		arg.RescheduleDate,
		arg.RescheduleTime,
		arg.ScheduledAt,
		arg.ClosedAt,
		arg.UpdatedAt,
		arg.ExpectedStatus,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const insertTestDriveRequestEvent = `
INSERT INTO test_drive_request_events (request_id, action, from_status, to_status, actor, message, occurred_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

type InsertTestDriveRequestEventParams struct {
	RequestID  uuid.UUID
	Action     string
	FromStatus string
	ToStatus   string
	Actor      string
	Message    string
	OccurredAt time.Time
}

func (q *Queries) InsertTestDriveRequestEvent(ctx context.Context, db db.DBTX, arg InsertTestDriveRequestEventParams) error {
	_, err := db.Exec(ctx, insertTestDriveRequestEvent,
		arg.RequestID,
		arg.Action,
		arg.FromStatus,
		arg.ToStatus,
		arg.Actor,
		arg.Message,
		arg.OccurredAt,
	)
	return err
}

const listTestDriveRequestEvents = `
SELECT id, request_id, action, from_status, to_status, actor, message, occurred_at
FROM test_drive_request_events
WHERE request_id = $1
ORDER BY id`

func (q *Queries) ListTestDriveRequestEvents(ctx context.Context, db db.DBTX, requestID uuid.UUID) ([]TestDriveRequestEvent, error) {
	rows, err := db.Query(ctx, listTestDriveRequestEvents, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TestDriveRequestEvent
	for rows.Next() {
		var i TestDriveRequestEvent
		if err := rows.Scan(
			&i.ID,
			&i.RequestID,
			&i.Action,
			&i.FromStatus,
			&i.ToStatus,
			&i.Actor,
			&i.Message,
			&i.OccurredAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
