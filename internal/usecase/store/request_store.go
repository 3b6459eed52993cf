// Package store is the system of record for test drive requests.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/infra"
	"testdrive-hub/internal/pkg/clock"
	"testdrive-hub/internal/pkg/errs"
	"testdrive-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

// NotFoundError reports an unknown request id. errs.Is(err, errs.ErrRequestNotFound) holds for it.
type NotFoundError struct {
	RequestID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("test drive request %s not found", e.RequestID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == errs.ErrRequestNotFound
}

type RequestStore struct {
	repo  shared.RequestRepository
	rules testdrive.Rules
	clock clock.Clock
}

func NewRequestStore(repo shared.RequestRepository, rules testdrive.Rules, clk clock.Clock) *RequestStore {
	return &RequestStore{
		repo:  repo,
		rules: rules,
		clock: clk,
	}
}

func (s *RequestStore) Rules() testdrive.Rules {
	return s.rules
}

// Create validates the payload and persists a new request as sent.
// When persisting fails the returned request is in the failed state alongside the error.
func (s *RequestStore) Create(ctx context.Context, payload testdrive.Payload, vehicle testdrive.VehicleData) (*testdrive.Request, error) {
	now := s.clock.Now()
	req, err := testdrive.NewRequest(payload, vehicle, s.rules, now)
	if err != nil {
		return nil, err
	}

	sent := req.Clone()
	if err := sent.MarkSent(now); err != nil {
		return nil, err
	}
	entry := shared.HistoryEntry{
		RequestID: sent.ID(),
		Action:    shared.ActionSubmit,
		From:      testdrive.StatusSending,
		To:        testdrive.StatusSent,
		Actor:     sent.BuyerData().Email,
		At:        now,
	}

	if err := s.repo.Insert(ctx, sent, entry); err != nil {
		_ = req.MarkFailed(now)
		slog.ErrorContext(ctx, "Failed to persist test drive request",
			slog.String("request_id", req.ID().String()),
			slog.String("vehicle_id", vehicle.ID),
			slog.Any("error", err),
		)
		return req, errs.Mark(errs.Wrap(err, "create test drive request"), errs.ErrDatabaseOperationFailed)
	}
	return sent, nil
}

func (s *RequestStore) GetByID(ctx context.Context, id uuid.UUID) (*testdrive.Request, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(err, id)
	}
	return req, nil
}

// GetBySeller returns every request for the seller in insertion order.
func (s *RequestStore) GetBySeller(ctx context.Context, sellerEmail string) ([]*testdrive.Request, error) {
	reqs, err := s.repo.ListBySeller(ctx, sellerEmail, nil)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "list requests by seller"), errs.ErrDatabaseOperationFailed)
	}
	return reqs, nil
}

func (s *RequestStore) GetByStatus(ctx context.Context, sellerEmail string, status testdrive.Status) ([]*testdrive.Request, error) {
	if !status.IsValid() {
		return nil, testdrive.ErrInvalidStatus
	}
	reqs, err := s.repo.ListBySeller(ctx, sellerEmail, &status)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "list requests by status"), errs.ErrDatabaseOperationFailed)
	}
	return reqs, nil
}

func (s *RequestStore) ListByBuyer(ctx context.Context, buyerEmail string) ([]*testdrive.Request, error) {
	reqs, err := s.repo.ListByBuyer(ctx, buyerEmail)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "list requests by buyer"), errs.ErrDatabaseOperationFailed)
	}
	return reqs, nil
}

// ApplyTransition loads the latest state, applies t and writes it back only if no
// other transition got there first. The loser of a race gets an InvalidTransitionError.
func (s *RequestStore) ApplyTransition(ctx context.Context, id uuid.UUID, t testdrive.Transition) (*testdrive.Request, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	next := current.Clone()
	if err := next.Apply(t, s.rules, now); err != nil {
		return nil, err
	}

	entry := shared.HistoryEntry{
		RequestID: id,
		Action:    t.Action.String(),
		From:      current.Status(),
		To:        next.Status(),
		Actor:     actorLabel(t.Actor),
		Message:   strings.TrimSpace(t.Message),
		At:        now,
	}

	if err := s.repo.UpdateTransition(ctx, next, current.Status(), entry); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, &testdrive.InvalidTransitionError{
				RequestID: id,
				From:      current.Status(),
				Action:    t.Action,
				Reason:    "request changed state concurrently",
			}
		}
		return nil, s.mapErr(err, id)
	}
	return next, nil
}

// DueForCompletion lists open appointments whose slot has already ended.
func (s *RequestStore) DueForCompletion(ctx context.Context, limit int) ([]*testdrive.Request, error) {
	cutoff := s.clock.Now().Add(-testdrive.AppointmentDuration)
	reqs, err := s.repo.ListScheduledBefore(ctx, cutoff, limit)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "list due requests"), errs.ErrDatabaseOperationFailed)
	}
	return reqs, nil
}

func (s *RequestStore) History(ctx context.Context, id uuid.UUID) ([]shared.HistoryEntry, error) {
	entries, err := s.repo.History(ctx, id)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "list request history"), errs.ErrDatabaseOperationFailed)
	}
	return entries, nil
}

func (s *RequestStore) Now() time.Time {
	return s.clock.Now()
}

func (s *RequestStore) mapErr(err error, id uuid.UUID) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return &NotFoundError{RequestID: id}
	}
	return errs.Mark(errs.Wrap(err, "test drive request store"), errs.ErrDatabaseOperationFailed)
}

func actorLabel(a testdrive.Actor) string {
	if a.System {
		return "system"
	}
	return a.Email
}
