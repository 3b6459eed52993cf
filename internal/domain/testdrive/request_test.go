//go:build unit

package testdrive_test

import (
	"testing"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []testdrive.Status{
	testdrive.StatusSending,
	testdrive.StatusSent,
	testdrive.StatusConfirmed,
	testdrive.StatusRescheduled,
	testdrive.StatusDeclined,
	testdrive.StatusCancelled,
	testdrive.StatusCompleted,
	testdrive.StatusFailed,
}

var allActions = []testdrive.Action{
	testdrive.ActionConfirm,
	testdrive.ActionReschedule,
	testdrive.ActionDecline,
	testdrive.ActionCancel,
	testdrive.ActionComplete,
}

func TestNewRequest(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, testdrive.StatusSending, actual.Status())
		assert.Equal(t, b.Now, actual.Timestamp())
		assert.Equal(t, "veh-001", actual.VehicleID())
		assert.Equal(t, "2019 Toyota Prius S", actual.Vehicle().Title)
		assert.Nil(t, actual.RespondedAt())
		assert.Nil(t, actual.RescheduleProposal())
		assert.Equal(t, 13, actual.ScheduledAt().Day())
		assert.Equal(t, 10, actual.ScheduledAt().Hour())
	})

	t.Run("invalid payload fails with field errors", func(t *testing.T) {
		actual, err := builder.NewTestDriveBuilder().
			WithField(testdrive.FieldPhone, "123").
			WithDaysAhead(0).
			BuildDomain()

		require.Nil(t, actual)
		require.ErrorIs(t, err, testdrive.ErrValidation)

		var verr *testdrive.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, testdrive.FieldPhone)
		assert.Contains(t, verr.Fields, testdrive.FieldPreferredDate)
	})

	t.Run("payload is normalized", func(t *testing.T) {
		actual, err := builder.NewTestDriveBuilder().
			WithField(testdrive.FieldName, "  Hanako  ").
			WithField(testdrive.FieldCustomLocation, "ignored").
			BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "Hanako", actual.BuyerData().Name)
		assert.Empty(t, actual.BuyerData().CustomLocation)
	})

	t.Run("persist outcome", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		sent, err := b.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, sent.MarkSent(b.Now))
		assert.Equal(t, testdrive.StatusSent, sent.Status())
		require.ErrorIs(t, sent.MarkSent(b.Now), testdrive.ErrInvalidTransition)

		failed, err := b.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, failed.MarkFailed(b.Now))
		assert.Equal(t, testdrive.StatusFailed, failed.Status())
		require.ErrorIs(t, failed.MarkSent(b.Now), testdrive.ErrInvalidTransition)
	})
}

func TestApply(t *testing.T) {
	t.Run("seller confirms", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		req, err := b.BuildInStatus(testdrive.StatusSent)
		require.NoError(t, err)

		err = req.Apply(testdrive.Transition{
			Action: testdrive.ActionConfirm, Actor: b.SellerActor(), Message: "See you then",
		}, b.Rules, b.Now)
		require.NoError(t, err)

		assert.Equal(t, testdrive.StatusConfirmed, req.Status())
		require.NotNil(t, req.RespondedAt())
		assert.Equal(t, b.Now, *req.RespondedAt())
		assert.Equal(t, "See you then", req.ResponseMessage())
		assert.Nil(t, req.RescheduleProposal())
	})

	t.Run("seller reschedules", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		req, err := b.BuildInStatus(testdrive.StatusSent)
		require.NoError(t, err)

		proposal := b.Proposal()
		err = req.Apply(testdrive.Transition{
			Action: testdrive.ActionReschedule, Actor: b.SellerActor(), Proposal: proposal,
		}, b.Rules, b.Now)
		require.NoError(t, err)

		assert.Equal(t, testdrive.StatusRescheduled, req.Status())
		require.NotNil(t, req.RescheduleProposal())
		assert.Equal(t, *proposal, *req.RescheduleProposal())
		assert.Equal(t, 14, req.ScheduledAt().Day())
		assert.Equal(t, 14, req.ScheduledAt().Hour())
		assert.Equal(t, 30, req.ScheduledAt().Minute())
	})

	t.Run("reschedule without proposal is rejected", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		req, err := b.BuildInStatus(testdrive.StatusSent)
		require.NoError(t, err)

		err = req.Apply(testdrive.Transition{Action: testdrive.ActionReschedule, Actor: b.SellerActor()}, b.Rules, b.Now)
		require.ErrorIs(t, err, testdrive.ErrValidation)
		assert.Equal(t, testdrive.StatusSent, req.Status())
		assert.Nil(t, req.RespondedAt())
	})

	t.Run("decline requires a reason", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		req, err := b.BuildInStatus(testdrive.StatusSent)
		require.NoError(t, err)

		err = req.Apply(testdrive.Transition{Action: testdrive.ActionDecline, Actor: b.SellerActor(), Message: "  "}, b.Rules, b.Now)
		require.ErrorIs(t, err, testdrive.ErrValidation)
		assert.Equal(t, testdrive.StatusSent, req.Status())

		err = req.Apply(testdrive.Transition{Action: testdrive.ActionDecline, Actor: b.SellerActor(), Message: "Sold"}, b.Rules, b.Now)
		require.NoError(t, err)
		assert.Equal(t, testdrive.StatusDeclined, req.Status())
		assert.Equal(t, "Sold", req.ResponseMessage())
	})

	t.Run("confirmed request can be cancelled by the buyer", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		req, err := b.BuildInStatus(testdrive.StatusConfirmed)
		require.NoError(t, err)

		err = req.Apply(testdrive.Transition{Action: testdrive.ActionCancel, Actor: b.BuyerActor()}, b.Rules, b.Now)
		require.NoError(t, err)
		assert.Equal(t, testdrive.StatusCancelled, req.Status())
		assert.Nil(t, req.RespondedAt())
		require.NotNil(t, req.ClosedAt())
	})

	t.Run("completion waits for the appointment to end", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		req, err := b.BuildInStatus(testdrive.StatusConfirmed)
		require.NoError(t, err)

		err = req.Apply(testdrive.Transition{Action: testdrive.ActionComplete, Actor: testdrive.SystemActor()}, b.Rules, req.ScheduledAt())
		require.ErrorIs(t, err, testdrive.ErrInvalidTransition)
		assert.Equal(t, testdrive.StatusConfirmed, req.Status())

		err = req.Apply(testdrive.Transition{Action: testdrive.ActionComplete, Actor: testdrive.SystemActor()}, b.Rules, req.AppointmentEnd())
		require.NoError(t, err)
		assert.Equal(t, testdrive.StatusCompleted, req.Status())
	})

	t.Run("actor guard", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		stranger := testdrive.Actor{Email: "stranger@example.com"}
		cases := []struct {
			name   string
			from   testdrive.Status
			action testdrive.Action
			actor  testdrive.Actor
		}{
			{name: "buyer cannot confirm", from: testdrive.StatusSent, action: testdrive.ActionConfirm, actor: b.BuyerActor()},
			{name: "stranger cannot cancel", from: testdrive.StatusSent, action: testdrive.ActionCancel, actor: stranger},
			{name: "system cannot decline", from: testdrive.StatusSent, action: testdrive.ActionDecline, actor: testdrive.SystemActor()},
			{name: "seller cannot complete", from: testdrive.StatusConfirmed, action: testdrive.ActionComplete, actor: b.SellerActor()},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				req, err := b.BuildInStatus(c.from)
				require.NoError(t, err)

				err = req.Apply(testdrive.Transition{Action: c.action, Actor: c.actor, Message: "x", Proposal: b.Proposal()}, b.Rules, b.Now.AddDate(0, 1, 0))
				require.ErrorIs(t, err, testdrive.ErrActorNotPermitted)
				assert.Equal(t, c.from, req.Status())
			})
		}
	})

	t.Run("seller email comparison ignores case", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		req, err := b.BuildInStatus(testdrive.StatusSent)
		require.NoError(t, err)

		err = req.Apply(testdrive.Transition{Action: testdrive.ActionConfirm, Actor: testdrive.Actor{Email: "SELLER@example.com"}}, b.Rules, b.Now)
		require.NoError(t, err)
	})
}

func TestTerminalStatesRejectEveryAction(t *testing.T) {
	b := builder.NewTestDriveBuilder()
	for _, status := range []testdrive.Status{
		testdrive.StatusDeclined, testdrive.StatusCancelled, testdrive.StatusCompleted, testdrive.StatusFailed,
	} {
		for _, action := range allActions {
			for _, actor := range []testdrive.Actor{b.SellerActor(), b.BuyerActor(), testdrive.SystemActor()} {
				req, err := b.BuildInStatus(status)
				require.NoError(t, err)
				before := req.Snapshot()

				err = req.Apply(testdrive.Transition{Action: action, Actor: actor, Message: "x", Proposal: b.Proposal()}, b.Rules, b.Now.AddDate(0, 1, 0))

				require.ErrorIs(t, err, testdrive.ErrInvalidTransition, "%s/%s", status, action)
				assert.Equal(t, before, req.Snapshot())
			}
		}
	}
}

// Every reachable state keeps rescheduleProposal iff rescheduled and respondedAt iff a seller response is the latest event.
func TestResponseFieldInvariants(t *testing.T) {
	b := builder.NewTestDriveBuilder()
	for _, status := range allStatuses {
		t.Run(string(status), func(t *testing.T) {
			req, err := b.BuildInStatus(status)
			require.NoError(t, err)
			assertInvariants(t, req)

			for _, action := range allActions {
				clone := req.Clone()
				actor := b.SellerActor()
				if action == testdrive.ActionComplete {
					actor = testdrive.SystemActor()
				}
				_ = clone.Apply(testdrive.Transition{Action: action, Actor: actor, Message: "note", Proposal: b.Proposal()}, b.Rules, b.Now.AddDate(0, 0, 7))
				assertInvariants(t, clone)
			}
		})
	}
}

func assertInvariants(t *testing.T, req *testdrive.Request) {
	t.Helper()
	responded := req.Status() == testdrive.StatusConfirmed ||
		req.Status() == testdrive.StatusRescheduled ||
		req.Status() == testdrive.StatusDeclined

	assert.Equal(t, req.Status() == testdrive.StatusRescheduled, req.RescheduleProposal() != nil, "proposal in %s", req.Status())
	assert.Equal(t, responded, req.RespondedAt() != nil, "respondedAt in %s", req.Status())
}

func TestNextStatus(t *testing.T) {
	expected := map[testdrive.Status]map[testdrive.Action]testdrive.Status{
		testdrive.StatusSent: {
			testdrive.ActionConfirm:    testdrive.StatusConfirmed,
			testdrive.ActionReschedule: testdrive.StatusRescheduled,
			testdrive.ActionDecline:    testdrive.StatusDeclined,
			testdrive.ActionCancel:     testdrive.StatusCancelled,
		},
		testdrive.StatusConfirmed: {
			testdrive.ActionComplete: testdrive.StatusCompleted,
			testdrive.ActionCancel:   testdrive.StatusCancelled,
		},
		testdrive.StatusRescheduled: {
			testdrive.ActionComplete: testdrive.StatusCompleted,
			testdrive.ActionCancel:   testdrive.StatusCancelled,
		},
	}

	for _, from := range append(allStatuses, testdrive.StatusDraft) {
		for _, action := range allActions {
			to, ok := testdrive.NextStatus(from, action)
			want, wantOK := expected[from][action]
			assert.Equal(t, wantOK, ok, "%s/%s", from, action)
			assert.Equal(t, want, to, "%s/%s", from, action)
		}
	}

	assert.Equal(t, []testdrive.Action{testdrive.ActionCancel, testdrive.ActionComplete}, testdrive.AllowedActions(testdrive.StatusConfirmed))
	assert.Empty(t, testdrive.AllowedActions(testdrive.StatusDeclined))
}

func TestParse(t *testing.T) {
	s, err := testdrive.ParseStatus("rescheduled")
	require.NoError(t, err)
	assert.Equal(t, testdrive.StatusRescheduled, s)

	_, err = testdrive.ParseStatus("pending")
	require.ErrorIs(t, err, testdrive.ErrInvalidStatus)

	_, err = testdrive.ParseAction("approve")
	require.ErrorIs(t, err, testdrive.ErrInvalidAction)

	assert.False(t, testdrive.StatusSending.IsPersistable())
	assert.False(t, testdrive.StatusFailed.IsPersistable())
	assert.True(t, testdrive.StatusCancelled.IsPersistable())
}
