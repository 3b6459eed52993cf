package memstore

import (
	"context"
	"sync"
	"time"

	"testdrive-hub/internal/pkg/clock"
	"testdrive-hub/internal/usecase/shared"

	"github.com/google/uuid"
)

type idemKey struct {
	key   uuid.UUID
	owner string
}

type IdempotencyRepository struct {
	mu      sync.Mutex
	clock   clock.Clock
	records map[idemKey]shared.IdempotencyRecord
}

func NewIdempotencyRepository(clk clock.Clock) *IdempotencyRepository {
	return &IdempotencyRepository{
		clock:   clk,
		records: make(map[idemKey]shared.IdempotencyRecord),
	}
}

func (r *IdempotencyRepository) Reserve(_ context.Context, key uuid.UUID, owner, requestHash string, expiresAt time.Time) (*shared.IdempotencyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := idemKey{key: key, owner: owner}
	if rec, ok := r.records[k]; ok && rec.ExpiresAt.After(r.clock.Now()) {
		return &rec, nil
	}
	r.records[k] = shared.IdempotencyRecord{
		Key:         key,
		Owner:       owner,
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return nil, nil
}

func (r *IdempotencyRepository) Complete(_ context.Context, key uuid.UUID, owner string, requestID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := idemKey{key: key, owner: owner}
	rec, ok := r.records[k]
	if !ok {
		return nil
	}
	rec.Status = shared.IdempotencyCompleted
	rec.RequestID = &requestID
	r.records[k] = rec
	return nil
}

func (r *IdempotencyRepository) Release(_ context.Context, key uuid.UUID, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := idemKey{key: key, owner: owner}
	if rec, ok := r.records[k]; ok && rec.Status == shared.IdempotencyProcessing {
		delete(r.records, k)
	}
	return nil
}
