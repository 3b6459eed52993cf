package pgquery

import (
	"context"
	"time"

	"testdrive-hub/internal/infra/db"
)

const createNotificationJob = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, 'queued')`

type CreateNotificationJobParams struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

func (q *Queries) CreateNotificationJob(ctx context.Context, db db.DBTX, arg CreateNotificationJobParams) error {
	_, err := db.Exec(ctx, createNotificationJob, arg.Kind, arg.Topic, arg.Payload, arg.RunAt)
	return err
}

const getPendingNotificationJobs = `
SELECT id, kind, topic, payload, run_at, attempts, status, last_error, created_at, updated_at
FROM notification_jobs
WHERE status = 'queued' AND run_at <= now()
ORDER BY run_at
LIMIT $1`

func (q *Queries) GetPendingNotificationJobs(ctx context.Context, db db.DBTX, limit int32) ([]NotificationJob, error) {
	rows, err := db.Query(ctx, getPendingNotificationJobs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []NotificationJob
	for rows.Next() {
		var i NotificationJob
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.Topic,
			&i.Payload,
			&i.RunAt,
			&i.Attempts,
			&i.Status,
			&i.LastError,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
