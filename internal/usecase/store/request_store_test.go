//go:build unit

package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/infra"
	"testdrive-hub/internal/infra/memstore"
	"testdrive-hub/internal/pkg/clock"
	"testdrive-hub/internal/pkg/errs"
	"testdrive-hub/internal/usecase/shared"
	"testdrive-hub/internal/usecase/store"
	"testdrive-hub/tests/common/builder"
	sharedmock "testdrive-hub/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newStore(b *builder.TestDriveBuilder) (*store.RequestStore, *memstore.RequestRepository, *clock.MockClock) {
	repo := memstore.NewRequestRepository()
	clk := clock.NewMockClock(b.Now)
	return store.NewRequestStore(repo, b.Rules, clk), repo, clk
}

func TestRequestStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("基本成功ケース", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		s, repo, _ := newStore(b)

		req, err := s.Create(ctx, b.Payload, b.Vehicle)
		require.NoError(t, err)
		assert.Equal(t, testdrive.StatusSent, req.Status())
		assert.Equal(t, b.Now, req.Timestamp())

		stored, err := repo.FindByID(ctx, req.ID())
		require.NoError(t, err)
		assert.Equal(t, testdrive.StatusSent, stored.Status())

		history, err := s.History(ctx, req.ID())
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, shared.ActionSubmit, history[0].Action)
		assert.Equal(t, testdrive.StatusSending, history[0].From)
		assert.Equal(t, testdrive.StatusSent, history[0].To)
	})

	t.Run("validation failure never writes", func(t *testing.T) {
		b := builder.NewTestDriveBuilder().WithField(testdrive.FieldName, "")
		ctrl := gomock.NewController(t)
		mockRepo := sharedmock.NewMockRequestRepository(ctrl)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		s := store.NewRequestStore(mockRepo, b.Rules, clock.NewMockClock(b.Now))

		req, err := s.Create(ctx, b.Payload, b.Vehicle)
		assert.Nil(t, req)
		require.ErrorIs(t, err, testdrive.ErrValidation)

		var ve *testdrive.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, testdrive.FieldName)
	})

	t.Run("persist failure returns the request as failed", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		ctrl := gomock.NewController(t)
		mockRepo := sharedmock.NewMockRequestRepository(ctrl)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("insert", errors.New("connection refused")))
		s := store.NewRequestStore(mockRepo, b.Rules, clock.NewMockClock(b.Now))

		req, err := s.Create(ctx, b.Payload, b.Vehicle)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
		require.NotNil(t, req)
		assert.Equal(t, testdrive.StatusFailed, req.Status())
	})
}

func TestRequestStore_Queries(t *testing.T) {
	ctx := context.Background()
	b := builder.NewTestDriveBuilder()
	s, _, _ := newStore(b)

	first, err := s.Create(ctx, b.Payload, b.Vehicle)
	require.NoError(t, err)
	second, err := s.Create(ctx, b.Payload, b.Vehicle)
	require.NoError(t, err)
	_, err = s.Create(ctx, b.Payload, testdrive.VehicleData{ID: "veh-009", Title: "Other", SellerEmail: "other@example.com"})
	require.NoError(t, err)

	_, err = s.ApplyTransition(ctx, second.ID(), testdrive.Transition{Action: testdrive.ActionDecline, Actor: b.SellerActor(), Message: "Sold"})
	require.NoError(t, err)

	t.Run("getBySeller keeps insertion order across statuses", func(t *testing.T) {
		all, err := s.GetBySeller(ctx, b.Vehicle.SellerEmail)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, first.ID(), all[0].ID())
		assert.Equal(t, second.ID(), all[1].ID())
	})

	t.Run("getByStatus filters", func(t *testing.T) {
		declined, err := s.GetByStatus(ctx, b.Vehicle.SellerEmail, testdrive.StatusDeclined)
		require.NoError(t, err)
		require.Len(t, declined, 1)
		assert.Equal(t, second.ID(), declined[0].ID())
	})

	t.Run("getByStatus rejects unknown status", func(t *testing.T) {
		_, err := s.GetByStatus(ctx, b.Vehicle.SellerEmail, testdrive.Status("archived"))
		assert.ErrorIs(t, err, testdrive.ErrInvalidStatus)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := s.GetByID(ctx, uuid.New())
		var nf *store.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.True(t, errs.Is(err, errs.ErrRequestNotFound))
	})
}

func TestRequestStore_ApplyTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("reschedule on sent stores the proposal", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		s, _, _ := newStore(b)
		req, err := s.Create(ctx, b.Payload, b.Vehicle)
		require.NoError(t, err)

		proposal := &testdrive.RescheduleProposal{Date: b.Now.AddDate(0, 0, 5).Format(testdrive.DateLayout), Time: "14:00"}
		actual, err := s.ApplyTransition(ctx, req.ID(), testdrive.Transition{
			Action: testdrive.ActionReschedule, Actor: b.SellerActor(), Proposal: proposal,
		})
		require.NoError(t, err)
		assert.Equal(t, testdrive.StatusRescheduled, actual.Status())
		assert.Equal(t, proposal, actual.RescheduleProposal())

		reloaded, err := s.GetByID(ctx, req.ID())
		require.NoError(t, err)
		assert.Equal(t, actual.Snapshot(), reloaded.Snapshot())
	})

	t.Run("confirm on declined is an invalid transition", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		s, _, _ := newStore(b)
		req, err := s.Create(ctx, b.Payload, b.Vehicle)
		require.NoError(t, err)
		_, err = s.ApplyTransition(ctx, req.ID(), testdrive.Transition{Action: testdrive.ActionDecline, Actor: b.SellerActor(), Message: "Sold"})
		require.NoError(t, err)

		_, err = s.ApplyTransition(ctx, req.ID(), testdrive.Transition{Action: testdrive.ActionConfirm, Actor: b.SellerActor()})
		assert.ErrorIs(t, err, testdrive.ErrInvalidTransition)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		s, _, _ := newStore(b)
		_, err := s.ApplyTransition(ctx, uuid.New(), testdrive.Transition{Action: testdrive.ActionConfirm, Actor: b.SellerActor()})
		assert.True(t, errs.Is(err, errs.ErrRequestNotFound))
	})

	t.Run("store conflict surfaces as invalid transition", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		req, err := b.BuildInStatus(testdrive.StatusSent)
		require.NoError(t, err)

		ctrl := gomock.NewController(t)
		mockRepo := sharedmock.NewMockRequestRepository(ctrl)
		mockRepo.EXPECT().FindByID(gomock.Any(), req.ID()).Return(req, nil)
		mockRepo.EXPECT().UpdateTransition(gomock.Any(), gomock.Any(), testdrive.StatusSent, gomock.Any()).
			Return(infra.WrapRepoErr("moved on", nil, infra.KindConflict))
		s := store.NewRequestStore(mockRepo, b.Rules, clock.NewMockClock(b.Now))

		_, err = s.ApplyTransition(ctx, req.ID(), testdrive.Transition{Action: testdrive.ActionConfirm, Actor: b.SellerActor()})
		assert.ErrorIs(t, err, testdrive.ErrInvalidTransition)
	})

	t.Run("concurrent confirm and cancel have exactly one winner", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		s, _, _ := newStore(b)
		req, err := s.Create(ctx, b.Payload, b.Vehicle)
		require.NoError(t, err)

		transitions := []testdrive.Transition{
			{Action: testdrive.ActionConfirm, Actor: b.SellerActor()},
			{Action: testdrive.ActionCancel, Actor: b.BuyerActor()},
		}
		results := make([]error, len(transitions))
		var wg sync.WaitGroup
		for i, tr := range transitions {
			wg.Add(1)
			go func(i int, tr testdrive.Transition) {
				defer wg.Done()
				_, results[i] = s.ApplyTransition(ctx, req.ID(), tr)
			}(i, tr)
		}
		wg.Wait()

		var failures int
		for _, err := range results {
			if err != nil {
				assert.ErrorIs(t, err, testdrive.ErrInvalidTransition)
				failures++
			}
		}
		// a cancel after a confirm is still legal, so both may succeed when they run back to back
		assert.LessOrEqual(t, failures, 1)

		history, err := s.History(ctx, req.ID())
		require.NoError(t, err)
		assert.Len(t, history, 1+len(transitions)-failures)
	})
}

func TestRequestStore_DueForCompletion(t *testing.T) {
	ctx := context.Background()
	b := builder.NewTestDriveBuilder()
	s, _, clk := newStore(b)

	req, err := s.Create(ctx, b.Payload, b.Vehicle)
	require.NoError(t, err)
	_, err = s.ApplyTransition(ctx, req.ID(), testdrive.Transition{Action: testdrive.ActionConfirm, Actor: b.SellerActor()})
	require.NoError(t, err)

	due, err := s.DueForCompletion(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	clk.Set(req.ScheduledAt().Add(30 * time.Minute))
	due, err = s.DueForCompletion(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, due, "the slot has not ended yet")

	clk.Set(req.ScheduledAt().Add(time.Hour))
	due, err = s.DueForCompletion(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, req.ID(), due[0].ID())

	completed, err := s.ApplyTransition(ctx, req.ID(), testdrive.Transition{Action: testdrive.ActionComplete, Actor: testdrive.SystemActor()})
	require.NoError(t, err)
	assert.Equal(t, testdrive.StatusCompleted, completed.Status())
	assert.Nil(t, completed.RespondedAt())
	assert.NotNil(t, completed.ClosedAt())
}
