package repository

import (
	"context"
	"time"

	"testdrive-hub/internal/infra"
	"testdrive-hub/internal/infra/db"
	"testdrive-hub/internal/infra/pgquery"
	"testdrive-hub/internal/pkg/pgconv"
	"testdrive-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db db.DBTX, arg pgquery.TryInsertIdempotencyKeyParams) (int64, error)
	GetIdempotencyKey(ctx context.Context, db db.DBTX, key uuid.UUID, owner string) (pgquery.IdempotencyKey, error)
	ClaimExpiredIdempotencyKey(ctx context.Context, db db.DBTX, arg pgquery.TryInsertIdempotencyKeyParams) (int64, error)
	CompleteIdempotencyKey(ctx context.Context, db db.DBTX, key uuid.UUID, owner string, requestID uuid.UUID) error
	DeleteIdempotencyKey(ctx context.Context, db db.DBTX, key uuid.UUID, owner string) error
}

type IdempotencyRepository struct {
	queries IdempotencyQueries
	db      db.DBTX
}

func NewIdempotencyRepository(queries IdempotencyQueries, db db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
	}
}

func (r *IdempotencyRepository) Reserve(ctx context.Context, key uuid.UUID, owner, requestHash string, expiresAt time.Time) (*shared.IdempotencyRecord, error) {
	params := pgquery.TryInsertIdempotencyKeyParams{
		Key:         key,
		Owner:       owner,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}

	inserted, err := r.queries.TryInsertIdempotencyKey(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reserve idempotency key", err)
	}
	if inserted == 1 {
		return nil, nil
	}

	claimed, err := r.queries.ClaimExpiredIdempotencyKey(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	if claimed == 1 {
		return nil, nil
	}

	row, err := r.queries.GetIdempotencyKey(ctx, r.db, key, owner)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	return &shared.IdempotencyRecord{
		Key:         row.Key,
		Owner:       row.Owner,
		Status:      row.Status,
		RequestHash: row.RequestHash,
		RequestID:   pgconv.UUIDPtrFromPgtype(row.RequestID),
		ExpiresAt:   row.ExpiresAt,
	}, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, key uuid.UUID, owner string, requestID uuid.UUID) error {
	if err := r.queries.CompleteIdempotencyKey(ctx, r.db, key, owner, requestID); err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, key uuid.UUID, owner string) error {
	if err := r.queries.DeleteIdempotencyKey(ctx, r.db, key, owner); err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}
