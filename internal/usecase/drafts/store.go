// Package drafts keeps best-effort copies of in-progress test drive forms.
package drafts

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"log/slog"
	"net/url"
	"time"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/infra"
	"testdrive-hub/internal/pkg/clock"
	"testdrive-hub/internal/usecase/shared"
)

// Key scopes a draft to one vehicle and one user or anonymous session.
type Key struct {
	VehicleID string
	Owner     string
}

// String escapes both parts so a ':' inside either cannot collide with another key.
func (k Key) String() string {
	return "draft:" + url.QueryEscape(k.VehicleID) + ":" + url.QueryEscape(k.Owner)
}

func (k Key) Valid() bool {
	return k.VehicleID != "" && k.Owner != ""
}

type Draft struct {
	VehicleID string            `json:"vehicleId"`
	Payload   testdrive.Payload `json:"payload"`
	SavedAt   time.Time         `json:"savedAt"`
}

// Store never returns storage errors; they are logged and the call reports no write.
// The dirty check compares against the stored blob, so several instances may share one backend.
type Store struct {
	repo    shared.DraftRepository
	ttl     time.Duration
	clock   clock.Clock
	metrics shared.Metrics
}

func NewStore(repo shared.DraftRepository, ttl time.Duration, clk clock.Clock, metrics shared.Metrics) *Store {
	if metrics == nil {
		metrics = shared.NopMetrics{}
	}
	return &Store{
		repo:    repo,
		ttl:     ttl,
		clock:   clk,
		metrics: metrics,
	}
}

// SaveDraft writes payload unless the backend already holds the same one. It reports whether a write happened.
func (s *Store) SaveDraft(ctx context.Context, key Key, payload testdrive.Payload) bool {
	sum, err := fingerprint(payload)
	if err != nil {
		slog.WarnContext(ctx, "Draft fingerprint failed", slog.String("key", key.String()), slog.Any("error", err))
		s.metrics.ObserveDraftSave(shared.ResultError)
		return false
	}

	if stored, ok := s.storedFingerprint(ctx, key); ok && stored == sum {
		s.metrics.ObserveDraftSave(shared.ResultSkipped)
		return false
	}

	data, err := json.Marshal(Draft{VehicleID: key.VehicleID, Payload: payload, SavedAt: s.clock.Now()})
	if err != nil {
		slog.WarnContext(ctx, "Draft encode failed", slog.String("key", key.String()), slog.Any("error", err))
		s.metrics.ObserveDraftSave(shared.ResultError)
		return false
	}
	if err := s.repo.Put(ctx, key.String(), data, s.ttl); err != nil {
		slog.WarnContext(ctx, "Draft save failed", slog.String("key", key.String()), slog.Any("error", err))
		s.metrics.ObserveDraftSave(shared.ResultError)
		return false
	}

	s.metrics.ObserveDraftSave(shared.ResultSuccess)
	return true
}

// LoadDraft returns the stored draft, or false when there is none or it cannot be read.
func (s *Store) LoadDraft(ctx context.Context, key Key) (Draft, bool) {
	data, err := s.repo.Get(ctx, key.String())
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			slog.WarnContext(ctx, "Draft load failed", slog.String("key", key.String()), slog.Any("error", err))
		}
		return Draft{}, false
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		slog.WarnContext(ctx, "Draft decode failed", slog.String("key", key.String()), slog.Any("error", err))
		return Draft{}, false
	}
	return d, true
}

func (s *Store) ClearDraft(ctx context.Context, key Key) {
	if err := s.repo.Delete(ctx, key.String()); err != nil {
		slog.WarnContext(ctx, "Draft clear failed", slog.String("key", key.String()), slog.Any("error", err))
	}
}

// storedFingerprint reports false when nothing readable is stored, which forces a write.
func (s *Store) storedFingerprint(ctx context.Context, key Key) ([sha256.Size]byte, bool) {
	d, ok := s.LoadDraft(ctx, key)
	if !ok {
		return [sha256.Size]byte{}, false
	}
	sum, err := fingerprint(d.Payload)
	return sum, err == nil
}

func fingerprint(p testdrive.Payload) ([sha256.Size]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	return sha256.Sum256(data), nil
}
