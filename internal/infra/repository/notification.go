package repository

import (
	"context"
	"encoding/json"
	"time"

	"testdrive-hub/internal/infra"
	"testdrive-hub/internal/infra/db"
	"testdrive-hub/internal/infra/pgquery"
	"testdrive-hub/internal/usecase/shared"
)

type NotificationQueries interface {
	CreateNotificationJob(ctx context.Context, db db.DBTX, arg pgquery.CreateNotificationJobParams) error
	GetPendingNotificationJobs(ctx context.Context, db db.DBTX, limit int32) ([]pgquery.NotificationJob, error)
}

// NotificationOutbox queues notifications in notification_jobs for an external mailer to drain.
type NotificationOutbox struct {
	queries NotificationQueries
	db      db.DBTX
}

func NewNotificationOutbox(queries NotificationQueries, db db.DBTX) *NotificationOutbox {
	return &NotificationOutbox{
		queries: queries,
		db:      db,
	}
}

func (r *NotificationOutbox) Notify(ctx context.Context, n shared.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return infra.WrapRepoErr("failed to encode notification", err, infra.KindDBFailure)
	}

	params := pgquery.CreateNotificationJobParams{
		Kind:    "email",
		Topic:   n.Topic,
		Payload: payload,
		RunAt:   n.OccurredAt,
	}
	if err := r.queries.CreateNotificationJob(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

type PendingNotification struct {
	Topic        string
	Notification shared.Notification
	RunAt        time.Time
	Attempts     int32
}

func (r *NotificationOutbox) Pending(ctx context.Context, limit int32) ([]PendingNotification, error) {
	rows, err := r.queries.GetPendingNotificationJobs(ctx, r.db, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get pending notification jobs", err)
	}

	out := make([]PendingNotification, 0, len(rows))
	for _, row := range rows {
		var n shared.Notification
		if err := json.Unmarshal(row.Payload, &n); err != nil {
			return nil, infra.WrapRepoErr("failed to decode notification job", err, infra.KindDBFailure)
		}
		out = append(out, PendingNotification{Topic: row.Topic, Notification: n, RunAt: row.RunAt, Attempts: row.Attempts})
	}
	return out, nil
}
