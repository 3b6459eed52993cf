package pgquery

import (
	"context"
	"time"

	"testdrive-hub/internal/infra/db"

	"github.com/google/uuid"
)

const tryInsertIdempotencyKey = `
INSERT INTO idempotency_keys (key, owner, request_hash, status, expires_at)
VALUES ($1, $2, $3, 'processing', $4)
ON CONFLICT (key, owner) DO NOTHING`

type TryInsertIdempotencyKeyParams struct {
	Key         uuid.UUID
	Owner       string
	RequestHash string
	ExpiresAt   time.Time
}

func (q *Queries) TryInsertIdempotencyKey(ctx context.Context, db db.DBTX, arg TryInsertIdempotencyKeyParams) (int64, error) {
	tag, err := db.Exec(ctx, tryInsertIdempotencyKey, arg.Key, arg.Owner, arg.RequestHash, arg.ExpiresAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getIdempotencyKey = `
SELECT key, owner, request_hash, status, request_id, expires_at, created_at, updated_at
FROM idempotency_keys
WHERE key = $1 AND owner = $2`

func (q *Queries) GetIdempotencyKey(ctx context.Context, db db.DBTX, key uuid.UUID, owner string) (IdempotencyKey, error) {
	row := db.QueryRow(ctx, getIdempotencyKey, key, owner)
	var i IdempotencyKey
	err := row.Scan(
		&i.Key,
		&i.Owner,
		&i.RequestHash,
		&i.Status,
		&i.RequestID,
		&i.ExpiresAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const claimExpiredIdempotencyKey = `
UPDATE idempotency_keys
SET request_hash = $3, status = 'processing', request_id = NULL, expires_at = $4, updated_at = now()
WHERE key = $1 AND owner = $2 AND expires_at < now()`

func (q *Queries) ClaimExpiredIdempotencyKey(ctx context.Context, db db.DBTX, arg TryInsertIdempotencyKeyParams) (int64, error) {
	tag, err := db.Exec(ctx, claimExpiredIdempotencyKey, arg.Key, arg.Owner, arg.RequestHash, arg.ExpiresAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const completeIdempotencyKey = `
UPDATE idempotency_keys
SET status = 'completed', request_id = $3, updated_at = now()
WHERE key = $1 AND owner = $2`

func (q *Queries) CompleteIdempotencyKey(ctx context.Context, db db.DBTX, key uuid.UUID, owner string, requestID uuid.UUID) error {
	_, err := db.Exec(ctx, completeIdempotencyKey, key, owner, requestID)
	return err
}

const deleteIdempotencyKey = `DELETE FROM idempotency_keys WHERE key = $1 AND owner = $2 AND status = 'processing'`

func (q *Queries) DeleteIdempotencyKey(ctx context.Context, db db.DBTX, key uuid.UUID, owner string) error {
	_, err := db.Exec(ctx, deleteIdempotencyKey, key, owner)
	return err
}
