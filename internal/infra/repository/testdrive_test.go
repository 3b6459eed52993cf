//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/infra"
	"testdrive-hub/internal/infra/pgquery"
	"testdrive-hub/internal/infra/repository"
	"testdrive-hub/internal/infra/repository/converter"
	"testdrive-hub/internal/usecase/shared"
	"testdrive-hub/tests/common/builder"
	repositorymock "testdrive-hub/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Insert Tests
// =============================================================================

func TestTestDriveRepository_Insert(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name         string
		setupMock    func(*repositorymock.MockTestDriveQueries, *testdrive.Request)
		expectKind   infra.RepositoryErrorKind
		expectCommit bool
	}{
		{
			name: "success: request and submit event written in one transaction",
			setupMock: func(mock *repositorymock.MockTestDriveQueries, req *testdrive.Request) {
				gomock.InOrder(
					mock.EXPECT().InsertTestDriveRequest(ctx, gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, _ any, arg pgquery.InsertTestDriveRequestParams) error {
							assert.Equal(t, req.ID(), arg.ID)
							assert.Equal(t, "sent", arg.Status)
							assert.False(t, arg.RescheduleDate.Valid)
							return nil
						}),
					mock.EXPECT().InsertTestDriveRequestEvent(ctx, gomock.Any(), gomock.Any()).Return(nil),
				)
			},
			expectCommit: true,
		},
		{
			name: "error: duplicate id",
			setupMock: func(mock *repositorymock.MockTestDriveQueries, _ *testdrive.Request) {
				dup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
				mock.EXPECT().InsertTestDriveRequest(ctx, gomock.Any(), gomock.Any()).Return(dup)
			},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name: "error: event insert fails and nothing is committed",
			setupMock: func(mock *repositorymock.MockTestDriveQueries, _ *testdrive.Request) {
				mock.EXPECT().InsertTestDriveRequest(ctx, gomock.Any(), gomock.Any()).Return(nil)
				mock.EXPECT().InsertTestDriveRequestEvent(ctx, gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockTestDriveQueries(ctrl)
			pool := &fakePool{}
			repo := repository.NewTestDriveRepository(mockQueries, pool, time.UTC)

			req, err := builder.NewTestDriveBuilder().BuildInStatus(testdrive.StatusSent)
			require.NoError(t, err)
			tc.setupMock(mockQueries, req)

			actualError := repo.Insert(ctx, req, shared.HistoryEntry{RequestID: req.ID(), Action: shared.ActionSubmit})

			if tc.expectKind != "" {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
			} else {
				assert.NoError(t, actualError)
			}
			assert.Equal(t, tc.expectCommit, pool.tx.committed)
		})
	}
}

// =============================================================================
// UpdateTransition Tests
// =============================================================================

func TestTestDriveRepository_UpdateTransition(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		setupMock  func(*repositorymock.MockTestDriveQueries)
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "success: one row written",
			setupMock: func(mock *repositorymock.MockTestDriveQueries) {
				mock.EXPECT().UpdateTestDriveRequestTransition(ctx, gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, arg pgquery.UpdateTestDriveRequestTransitionParams) (int64, error) {
						assert.Equal(t, "sent", arg.ExpectedStatus)
						assert.Equal(t, "confirmed", arg.Status)
						assert.True(t, arg.RespondedAt.Valid)
						return 1, nil
					})
				mock.EXPECT().InsertTestDriveRequestEvent(ctx, gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "error: status moved on",
			setupMock: func(mock *repositorymock.MockTestDriveQueries) {
				mock.EXPECT().UpdateTestDriveRequestTransition(ctx, gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			expectKind: infra.KindConflict,
		},
		{
			name: "error: database error occurs",
			setupMock: func(mock *repositorymock.MockTestDriveQueries) {
				mock.EXPECT().UpdateTestDriveRequestTransition(ctx, gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database connection error"))
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockTestDriveQueries(ctrl)
			repo := repository.NewTestDriveRepository(mockQueries, &fakePool{}, time.UTC)

			b := builder.NewTestDriveBuilder()
			req, err := b.BuildInStatus(testdrive.StatusConfirmed)
			require.NoError(t, err)
			tc.setupMock(mockQueries)

			actualError := repo.UpdateTransition(ctx, req, testdrive.StatusSent, shared.HistoryEntry{RequestID: req.ID(), Action: "confirm"})

			if tc.expectKind != "" {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

// =============================================================================
// Read Tests
// =============================================================================

func TestTestDriveRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success: row decodes back into the same request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockTestDriveQueries(ctrl)
		repo := repository.NewTestDriveRepository(mockQueries, &fakePool{}, builder.FixedNow.Location())

		req, err := builder.NewTestDriveBuilder().BuildInStatus(testdrive.StatusRescheduled)
		require.NoError(t, err)
		row := rowFromRequest(t, req)

		mockQueries.EXPECT().GetTestDriveRequest(ctx, gomock.Any(), req.ID()).Return(row, nil)

		actual, err := repo.FindByID(ctx, req.ID())
		require.NoError(t, err)
		assert.Equal(t, req.Status(), actual.Status())
		assert.Equal(t, req.RescheduleProposal(), actual.RescheduleProposal())
		assert.Equal(t, req.BuyerData(), actual.BuyerData())
		assert.True(t, req.ScheduledAt().Equal(actual.ScheduledAt()))
	})

	t.Run("error: no rows is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockTestDriveQueries(ctrl)
		repo := repository.NewTestDriveRepository(mockQueries, &fakePool{}, time.UTC)

		mockQueries.EXPECT().GetTestDriveRequest(ctx, gomock.Any(), gomock.Any()).Return(pgquery.TestDriveRequest{}, pgx.ErrNoRows)

		_, err := repo.FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestTestDriveRepository_ListBySeller(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockTestDriveQueries(ctrl)
	repo := repository.NewTestDriveRepository(mockQueries, &fakePool{}, time.UTC)

	req, err := builder.NewTestDriveBuilder().BuildInStatus(testdrive.StatusSent)
	require.NoError(t, err)
	row := rowFromRequest(t, req)

	t.Run("no status filter passes NULL", func(t *testing.T) {
		mockQueries.EXPECT().ListTestDriveRequestsBySeller(ctx, gomock.Any(), "seller@example.com", pgtype.Text{}).
			Return([]pgquery.TestDriveRequest{row}, nil)

		actual, err := repo.ListBySeller(ctx, "seller@example.com", nil)
		require.NoError(t, err)
		require.Len(t, actual, 1)
		assert.Equal(t, req.ID(), actual[0].ID())
	})

	t.Run("status filter is passed through", func(t *testing.T) {
		status := testdrive.StatusDeclined
		mockQueries.EXPECT().ListTestDriveRequestsBySeller(ctx, gomock.Any(), "seller@example.com", pgtype.Text{String: "declined", Valid: true}).
			Return([]pgquery.TestDriveRequest{}, nil)

		actual, err := repo.ListBySeller(ctx, "seller@example.com", &status)
		require.NoError(t, err)
		assert.Empty(t, actual)
	})

	t.Run("unknown status in a row is a decode failure", func(t *testing.T) {
		bad := row
		bad.Status = "archived"
		mockQueries.EXPECT().ListTestDriveRequestsBySeller(ctx, gomock.Any(), "seller@example.com", pgtype.Text{}).
			Return([]pgquery.TestDriveRequest{bad}, nil)

		_, err := repo.ListBySeller(ctx, "seller@example.com", nil)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func rowFromRequest(t *testing.T, req *testdrive.Request) pgquery.TestDriveRequest {
	t.Helper()
	p, err := converter.RequestToInsertParams(req)
	require.NoError(t, err)
	return pgquery.TestDriveRequest{
		Seq:               1,
		ID:                p.ID,
		VehicleID:         p.VehicleID,
		VehicleTitle:      p.VehicleTitle,
		VehiclePriceCents: p.VehiclePriceCents,
		SellerEmail:       p.SellerEmail,
		SellerName:        p.SellerName,
		BuyerEmail:        p.BuyerEmail,
		BuyerData:         p.BuyerData,
		Status:            p.Status,
		RequestedAt:       p.RequestedAt,
		RespondedAt:       p.RespondedAt,
		ResponseMessage:   p.ResponseMessage,
		RescheduleDate:    p.RescheduleDate,
		RescheduleTime:    p.RescheduleTime,
		ScheduledAt:       p.ScheduledAt,
		ClosedAt:          p.ClosedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// fakePool hands out a fakeTx and never touches a database; queries go through the mock.
type fakePool struct {
	tx *fakeTx
}

func (p *fakePool) Begin(context.Context) (pgx.Tx, error) {
	p.tx = &fakeTx{}
	return p.tx, nil
}

func (p *fakePool) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (p *fakePool) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, nil
}

func (p *fakePool) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("fakePool.QueryRow was called unexpectedly. Use the query mock instead.")
}

type fakeTx struct {
	pgx.Tx
	committed bool
	closed    bool
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	tx.closed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if tx.closed {
		return pgx.ErrTxClosed
	}
	tx.closed = true
	return nil
}
