// Package memstore is the in-process backend used by tests and single-node demos.
package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/infra"
	"testdrive-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

// RequestRepository keeps requests in insertion order. All access is serialized by mu.
type RequestRepository struct {
	mu      sync.RWMutex
	order   []uuid.UUID
	byID    map[uuid.UUID]testdrive.Snapshot
	history map[uuid.UUID][]shared.HistoryEntry
}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{
		byID:    make(map[uuid.UUID]testdrive.Snapshot),
		history: make(map[uuid.UUID][]shared.HistoryEntry),
	}
}

func (r *RequestRepository) Insert(_ context.Context, req *testdrive.Request, entry shared.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[req.ID()]; exists {
		return infra.WrapRepoErr("test drive request already exists", nil, infra.KindDuplicateKey)
	}
	r.byID[req.ID()] = req.Snapshot()
	r.order = append(r.order, req.ID())
	r.history[req.ID()] = append(r.history[req.ID()], entry)
	return nil
}

func (r *RequestRepository) FindByID(_ context.Context, id uuid.UUID) (*testdrive.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("test drive request not found", nil, infra.KindNotFound)
	}
	return testdrive.Reconstruct(s), nil
}

func (r *RequestRepository) ListBySeller(_ context.Context, sellerEmail string, status *testdrive.Status) ([]*testdrive.Request, error) {
	return r.filter(func(s testdrive.Snapshot) bool {
		if !strings.EqualFold(s.Vehicle.SellerEmail, sellerEmail) {
			return false
		}
		return status == nil || s.Status == *status
	}), nil
}

func (r *RequestRepository) ListByBuyer(_ context.Context, buyerEmail string) ([]*testdrive.Request, error) {
	return r.filter(func(s testdrive.Snapshot) bool {
		return strings.EqualFold(s.BuyerData.Email, buyerEmail)
	}), nil
}

func (r *RequestRepository) ListScheduledBefore(_ context.Context, t time.Time, limit int) ([]*testdrive.Request, error) {
	out := r.filter(func(s testdrive.Snapshot) bool {
		open := s.Status == testdrive.StatusConfirmed || s.Status == testdrive.StatusRescheduled
		return open && !s.ScheduledAt.After(t)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *RequestRepository) UpdateTransition(_ context.Context, req *testdrive.Request, expected testdrive.Status, entry shared.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[req.ID()]
	if !ok {
		return infra.WrapRepoErr("test drive request not found", nil, infra.KindNotFound)
	}
	if current.Status != expected {
		return infra.WrapRepoErr("test drive request is no longer in status "+expected.String(), nil, infra.KindConflict)
	}
	r.byID[req.ID()] = req.Snapshot()
	r.history[req.ID()] = append(r.history[req.ID()], entry)
	return nil
}

func (r *RequestRepository) History(_ context.Context, id uuid.UUID) ([]shared.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.history[id]
	out := make([]shared.HistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (r *RequestRepository) filter(keep func(testdrive.Snapshot) bool) []*testdrive.Request {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*testdrive.Request, 0)
	for _, id := range r.order {
		s := r.byID[id]
		if keep(s) {
			out = append(out, testdrive.Reconstruct(s))
		}
	}
	return out
}
