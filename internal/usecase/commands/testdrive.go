package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/infra"
	"testdrive-hub/internal/pkg/clock"
	"testdrive-hub/internal/pkg/errs"
	"testdrive-hub/internal/usecase/drafts"
	"testdrive-hub/internal/usecase/shared"
	"testdrive-hub/internal/usecase/store"

	"github.com/google/uuid"
)

var (
	ErrIdempotencyInProgress  = errs.New("idempotency in progress")
	ErrIdempotencyKeyReused   = errs.New("idempotency key reused with a different request")
	ErrIdempotencyCheckFailed = errs.New("idempotency check failed")
)

const (
	idempotencyTTL  = 24 * time.Hour
	completionBatch = 100

	completeAttempts    = 4
	completeBackoffStep = 50 * time.Millisecond
)

type SubmitCommand struct {
	VehicleID string
	Payload   testdrive.Payload
	// DraftOwner is the user id or anonymous session that owns the form draft.
	DraftOwner     string
	IdempotencyKey *uuid.UUID
}

type SubmitResult struct {
	Request    *testdrive.Request
	IsReplayed bool
}

type RespondCommand struct {
	RequestID uuid.UUID
	Action    testdrive.Action
	Message   string
	Proposal  *testdrive.RescheduleProposal
	Actor     testdrive.Actor
}

type TestDriveCommands interface {
	Submit(ctx context.Context, cmd SubmitCommand) (*SubmitResult, error)
	Respond(ctx context.Context, cmd RespondCommand) (*testdrive.Request, error)
	CompleteDue(ctx context.Context) (int, error)
}

type testDriveUseCaseImpl struct {
	store       *store.RequestStore
	vehicles    shared.VehicleDirectory
	autosaver   *drafts.Autosaver
	idempotency shared.IdempotencyRepository
	notifier    shared.Notifier
	metrics     shared.Metrics
	clock       clock.Clock
}

func NewTestDriveUseCase(
	store *store.RequestStore,
	vehicles shared.VehicleDirectory,
	autosaver *drafts.Autosaver,
	idempotency shared.IdempotencyRepository,
	notifier shared.Notifier,
	metrics shared.Metrics,
	clock clock.Clock,
) TestDriveCommands {
	if metrics == nil {
		metrics = shared.NopMetrics{}
	}
	return &testDriveUseCaseImpl{
		store:       store,
		vehicles:    vehicles,
		autosaver:   autosaver,
		idempotency: idempotency,
		notifier:    notifier,
		metrics:     metrics,
		clock:       clock,
	}
}

// Submit validates, persists and then clears the caller's draft. The draft survives every failure.
func (u *testDriveUseCaseImpl) Submit(ctx context.Context, cmd SubmitCommand) (*SubmitResult, error) {
	vehicle, err := u.vehicles.FindByID(ctx, cmd.VehicleID)
	if err != nil {
		u.metrics.ObserveSubmission(shared.ResultError)
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrVehicleNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	payload := cmd.Payload.Normalized()
	if fe := testdrive.ValidateAll(payload, u.store.Rules(), u.clock.Now()); len(fe) > 0 {
		u.metrics.ObserveSubmission(shared.ResultInvalid)
		return nil, testdrive.NewValidationError(fe)
	}

	if cmd.IdempotencyKey != nil {
		replayed, err := u.reserve(ctx, cmd, payload)
		if err != nil {
			return nil, err
		}
		if replayed != nil {
			return &SubmitResult{Request: replayed, IsReplayed: true}, nil
		}
	}

	req, err := u.store.Create(ctx, payload, vehicle)
	if err != nil {
		u.release(ctx, cmd)
		if errs.Is(err, testdrive.ErrValidation) {
			u.metrics.ObserveSubmission(shared.ResultInvalid)
			return nil, err
		}
		u.metrics.ObserveSubmission(shared.ResultError)
		return &SubmitResult{Request: req}, err
	}

	if cmd.IdempotencyKey != nil {
		u.complete(ctx, *cmd.IdempotencyKey, cmd.DraftOwner, req.ID())
	}

	if cmd.DraftOwner != "" {
		u.autosaver.Discard(ctx, drafts.Key{VehicleID: vehicle.ID, Owner: cmd.DraftOwner})
	}

	u.notify(ctx, shared.TopicSubmitted, req, vehicle.SellerEmail, "")
	u.metrics.ObserveSubmission(shared.ResultSuccess)

	slog.InfoContext(ctx, "Test drive request submitted",
		slog.String("request_id", req.ID().String()),
		slog.String("vehicle_id", vehicle.ID),
	)
	return &SubmitResult{Request: req}, nil
}

// Respond applies a party action. InvalidTransitionError is returned as is so the caller re-fetches.
func (u *testDriveUseCaseImpl) Respond(ctx context.Context, cmd RespondCommand) (*testdrive.Request, error) {
	req, err := u.store.ApplyTransition(ctx, cmd.RequestID, testdrive.Transition{
		Action:   cmd.Action,
		Actor:    cmd.Actor,
		Message:  cmd.Message,
		Proposal: cmd.Proposal,
	})
	if err != nil {
		u.metrics.ObserveTransition(cmd.Action, transitionResult(err))
		return nil, err
	}

	u.notify(ctx, topicFor(cmd.Action), req, req.CounterpartyOf(cmd.Actor), req.ResponseMessage())
	u.metrics.ObserveTransition(cmd.Action, shared.ResultSuccess)

	slog.InfoContext(ctx, "Test drive request updated",
		slog.String("request_id", req.ID().String()),
		slog.String("action", cmd.Action.String()),
		slog.String("status", req.Status().String()),
	)
	return req, nil
}

// CompleteDue marks every appointment whose slot has ended as completed and returns how many were.
func (u *testDriveUseCaseImpl) CompleteDue(ctx context.Context) (int, error) {
	due, err := u.store.DueForCompletion(ctx, completionBatch)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, req := range due {
		done, err := u.store.ApplyTransition(ctx, req.ID(), testdrive.Transition{
			Action: testdrive.ActionComplete,
			Actor:  testdrive.SystemActor(),
		})
		if err != nil {
			u.metrics.ObserveTransition(testdrive.ActionComplete, transitionResult(err))
			if errs.Is(err, testdrive.ErrInvalidTransition) || errs.Is(err, errs.ErrRequestNotFound) {
				// a party acted first
				continue
			}
			return completed, err
		}

		u.notify(ctx, shared.TopicCompleted, done, done.BuyerData().Email, "")
		u.notify(ctx, shared.TopicCompleted, done, done.Vehicle().SellerEmail, "")
		u.metrics.ObserveTransition(testdrive.ActionComplete, shared.ResultSuccess)
		completed++
	}
	return completed, nil
}

func (u *testDriveUseCaseImpl) reserve(ctx context.Context, cmd SubmitCommand, payload testdrive.Payload) (*testdrive.Request, error) {
	hash, err := requestHash(cmd.VehicleID, payload)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	existing, err := u.idempotency.Reserve(ctx, *cmd.IdempotencyKey, cmd.DraftOwner, hash, u.clock.Now().Add(idempotencyTTL))
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if existing == nil {
		return nil, nil
	}

	if existing.RequestHash != hash {
		return nil, ErrIdempotencyKeyReused
	}
	switch existing.Status {
	case shared.IdempotencyCompleted:
		if existing.RequestID == nil {
			return nil, errs.Mark(errs.New("completed idempotency key has no request"), ErrIdempotencyCheckFailed)
		}
		return u.store.GetByID(ctx, *existing.RequestID)
	case shared.IdempotencyProcessing:
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.Mark(errs.Newf("invalid idempotency key status %q", existing.Status), ErrIdempotencyCheckFailed)
	}
}

// complete records the created request against the key; a key left processing blocks replays until it expires.
func (u *testDriveUseCaseImpl) complete(ctx context.Context, key uuid.UUID, owner string, requestID uuid.UUID) {
	ctx = context.WithoutCancel(ctx)
	var err error
	for attempt := 1; attempt <= completeAttempts; attempt++ {
		if err = u.idempotency.Complete(ctx, key, owner, requestID); err == nil {
			return
		}
		if attempt == completeAttempts {
			break
		}
		wait := time.Duration(attempt) * completeBackoffStep
		slog.WarnContext(ctx, "Retrying idempotency completion",
			slog.String("request_id", requestID.String()),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)
		time.Sleep(wait)
	}
	slog.ErrorContext(ctx, "Failed to complete idempotency key",
		slog.String("request_id", requestID.String()),
		slog.Any("error", err),
	)
}

func (u *testDriveUseCaseImpl) release(ctx context.Context, cmd SubmitCommand) {
	if cmd.IdempotencyKey == nil {
		return
	}
	if err := u.idempotency.Release(ctx, *cmd.IdempotencyKey, cmd.DraftOwner); err != nil {
		slog.WarnContext(ctx, "Failed to release idempotency key", slog.Any("error", err))
	}
}

// notify is best effort; delivery problems never fail the operation.
func (u *testDriveUseCaseImpl) notify(ctx context.Context, topic string, req *testdrive.Request, recipient, message string) {
	n := shared.Notification{
		Topic:        topic,
		RequestID:    req.ID(),
		Recipient:    recipient,
		VehicleTitle: req.Vehicle().Title,
		Status:       req.Status(),
		Message:      message,
		OccurredAt:   req.UpdatedAt(),
	}
	if err := u.notifier.Notify(ctx, n); err != nil {
		slog.WarnContext(ctx, "Failed to dispatch notification",
			slog.String("topic", topic),
			slog.String("request_id", req.ID().String()),
			slog.Any("error", err),
		)
	}
}

func requestHash(vehicleID string, payload testdrive.Payload) (string, error) {
	data, err := json.Marshal(struct {
		VehicleID string            `json:"vehicleId"`
		Payload   testdrive.Payload `json:"payload"`
	}{vehicleID, payload})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func topicFor(action testdrive.Action) string {
	switch action {
	case testdrive.ActionConfirm:
		return shared.TopicConfirmed
	case testdrive.ActionReschedule:
		return shared.TopicRescheduled
	case testdrive.ActionDecline:
		return shared.TopicDeclined
	case testdrive.ActionComplete:
		return shared.TopicCompleted
	default:
		return shared.TopicCancelled
	}
}

func transitionResult(err error) string {
	switch {
	case errs.Is(err, testdrive.ErrValidation), errs.Is(err, testdrive.ErrActorNotPermitted):
		return shared.ResultInvalid
	case errs.Is(err, testdrive.ErrInvalidTransition):
		return shared.ResultConflict
	default:
		return shared.ResultError
	}
}
