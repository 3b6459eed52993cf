package repository

import (
	"context"
	"time"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/infra"
	"testdrive-hub/internal/infra/db"
	"testdrive-hub/internal/infra/pgquery"
	"testdrive-hub/internal/infra/repository/converter"
	"testdrive-hub/internal/pkg/pgconv"
	"testdrive-hub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type TestDriveQueries interface {
	InsertTestDriveRequest(ctx context.Context, db db.DBTX, arg pgquery.InsertTestDriveRequestParams) error
	GetTestDriveRequest(ctx context.Context, db db.DBTX, id uuid.UUID) (pgquery.TestDriveRequest, error)
	ListTestDriveRequestsBySeller(ctx context.Context, db db.DBTX, sellerEmail string, status pgtype.Text) ([]pgquery.TestDriveRequest, error)
	ListTestDriveRequestsByBuyer(ctx context.Context, db db.DBTX, buyerEmail string) ([]pgquery.TestDriveRequest, error)
	ListTestDriveRequestsScheduledBefore(ctx context.Context, db db.DBTX, before time.Time, limit int32) ([]pgquery.TestDriveRequest, error)
	UpdateTestDriveRequestTransition(ctx context.Context, db db.DBTX, arg pgquery.UpdateTestDriveRequestTransitionParams) (int64, error)
	InsertTestDriveRequestEvent(ctx context.Context, db db.DBTX, arg pgquery.InsertTestDriveRequestEventParams) error
	ListTestDriveRequestEvents(ctx context.Context, db db.DBTX, requestID uuid.UUID) ([]pgquery.TestDriveRequestEvent, error)
}

// Pool is a connection that can both run queries and open transactions.
type Pool interface {
	db.DBTX
	db.TxBeginner
}

type TestDriveRepository struct {
	queries TestDriveQueries
	db      Pool
	loc     *time.Location
}

func NewTestDriveRepository(queries TestDriveQueries, pool Pool, loc *time.Location) *TestDriveRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &TestDriveRepository{
		queries: queries,
		db:      pool,
		loc:     loc,
	}
}

func (r *TestDriveRepository) Insert(ctx context.Context, req *testdrive.Request, entry shared.HistoryEntry) error {
	params, err := converter.RequestToInsertParams(req)
	if err != nil {
		return infra.WrapRepoErr("failed to encode test drive request", err, infra.KindDBFailure)
	}

	return db.InTx(ctx, r.db, func(tx db.DBTX) error {
		if err := r.queries.InsertTestDriveRequest(ctx, tx, params); err != nil {
			return infra.WrapRepoErr("failed to insert test drive request", err)
		}
		if err := r.queries.InsertTestDriveRequestEvent(ctx, tx, converter.HistoryToParams(entry)); err != nil {
			return infra.WrapRepoErr("failed to record test drive request event", err)
		}
		return nil
	})
}

func (r *TestDriveRepository) FindByID(ctx context.Context, id uuid.UUID) (*testdrive.Request, error) {
	row, err := r.queries.GetTestDriveRequest(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get test drive request", err)
	}

	req, err := converter.RequestFromRow(row, r.loc)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode test drive request", err, infra.KindDBFailure)
	}
	return req, nil
}

func (r *TestDriveRepository) ListBySeller(ctx context.Context, sellerEmail string, status *testdrive.Status) ([]*testdrive.Request, error) {
	var filter pgtype.Text
	if status != nil {
		filter = pgconv.StringToPgtype(status.String())
	}

	rows, err := r.queries.ListTestDriveRequestsBySeller(ctx, r.db, sellerEmail, filter)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list test drive requests by seller", err)
	}
	return r.decode(rows)
}

func (r *TestDriveRepository) ListByBuyer(ctx context.Context, buyerEmail string) ([]*testdrive.Request, error) {
	rows, err := r.queries.ListTestDriveRequestsByBuyer(ctx, r.db, buyerEmail)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list test drive requests by buyer", err)
	}
	return r.decode(rows)
}

func (r *TestDriveRepository) ListScheduledBefore(ctx context.Context, t time.Time, limit int) ([]*testdrive.Request, error) {
	rows, err := r.queries.ListTestDriveRequestsScheduledBefore(ctx, r.db, t, int32(limit))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list due test drive requests", err)
	}
	return r.decode(rows)
}

func (r *TestDriveRepository) UpdateTransition(ctx context.Context, req *testdrive.Request, expected testdrive.Status, entry shared.HistoryEntry) error {
	params := converter.RequestToTransitionParams(req, expected)

	return db.InTxRetrying(ctx, r.db, func(tx db.DBTX) error {
		n, err := r.queries.UpdateTestDriveRequestTransition(ctx, tx, params)
		if err != nil {
			return infra.WrapRepoErr("failed to update test drive request", err)
		}
		if n == 0 {
			return infra.WrapRepoErr("test drive request is no longer in status "+expected.String(), nil, infra.KindConflict)
		}
		if err := r.queries.InsertTestDriveRequestEvent(ctx, tx, converter.HistoryToParams(entry)); err != nil {
			return infra.WrapRepoErr("failed to record test drive request event", err)
		}
		return nil
	})
}

func (r *TestDriveRepository) History(ctx context.Context, id uuid.UUID) ([]shared.HistoryEntry, error) {
	rows, err := r.queries.ListTestDriveRequestEvents(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list test drive request events", err)
	}
	return converter.HistoryFromRows(rows, r.loc), nil
}

func (r *TestDriveRepository) decode(rows []pgquery.TestDriveRequest) ([]*testdrive.Request, error) {
	out, err := converter.RequestsFromRows(rows, r.loc)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode test drive requests", err, infra.KindDBFailure)
	}
	return out, nil
}
