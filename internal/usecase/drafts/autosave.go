package drafts

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"testdrive-hub/internal/domain/testdrive"
)

const saveTimeout = 5 * time.Second

type pendingSave struct {
	timer   *time.Timer
	payload testdrive.Payload
	seq     uint64
}

// Autosaver debounces draft writes: at most one save is pending per key and a newer
// schedule replaces the older one.
type Autosaver struct {
	store  *Store
	window time.Duration

	// ioMu orders timer-fired writes against Flush and Discard, so a cleared draft is never rewritten.
	ioMu sync.Mutex

	mu      sync.Mutex
	pending map[Key]*pendingSave
	seq     uint64
	closed  bool
}

func NewAutosaver(store *Store, window time.Duration) *Autosaver {
	if window <= 0 {
		window = 2 * time.Second
	}
	return &Autosaver{
		store:   store,
		window:  window,
		pending: make(map[Key]*pendingSave),
	}
}

func (a *Autosaver) Store() *Store {
	return a.store
}

// Schedule arms a save of payload after the quiet window. It returns false once the autosaver is closed.
func (a *Autosaver) Schedule(key Key, payload testdrive.Payload) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return false
	}
	if p, ok := a.pending[key]; ok {
		p.timer.Stop()
	}

	a.seq++
	seq := a.seq
	a.pending[key] = &pendingSave{
		payload: payload,
		seq:     seq,
		timer:   time.AfterFunc(a.window, func() { a.fire(key, seq) }),
	}
	return true
}

func (a *Autosaver) Pending(key Key) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.pending[key]
	return ok
}

// Cancel drops the pending save for key without writing it.
func (a *Autosaver) Cancel(key Key) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked(key)
}

// Flush writes the pending save for key now. It reports whether a write happened.
func (a *Autosaver) Flush(ctx context.Context, key Key) bool {
	a.ioMu.Lock()
	defer a.ioMu.Unlock()

	p, ok := a.take(key, 0)
	if !ok {
		return false
	}
	return a.store.SaveDraft(ctx, key, p.payload)
}

// Discard cancels any pending save and deletes the stored draft.
func (a *Autosaver) Discard(ctx context.Context, key Key) {
	a.ioMu.Lock()
	defer a.ioMu.Unlock()

	a.Cancel(key)
	a.store.ClearDraft(ctx, key)
}

// Close writes every pending save and rejects further schedules.
func (a *Autosaver) Close(ctx context.Context) {
	a.mu.Lock()
	a.closed = true
	keys := make([]Key, 0, len(a.pending))
	for k := range a.pending {
		keys = append(keys, k)
	}
	a.mu.Unlock()

	for _, k := range keys {
		a.Flush(ctx, k)
	}
}

func (a *Autosaver) fire(key Key, seq uint64) {
	a.ioMu.Lock()
	defer a.ioMu.Unlock()

	p, ok := a.take(key, seq)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if a.store.SaveDraft(ctx, key, p.payload) {
		slog.Debug("Draft autosaved", slog.String("key", key.String()))
	}
}

// take removes the pending save for key. A non-zero seq must match the pending one.
func (a *Autosaver) take(key Key, seq uint64) (*pendingSave, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.pending[key]
	if !ok || (seq != 0 && p.seq != seq) {
		return nil, false
	}
	p.timer.Stop()
	delete(a.pending, key)
	return p, true
}

func (a *Autosaver) cancelLocked(key Key) {
	if p, ok := a.pending[key]; ok {
		p.timer.Stop()
		delete(a.pending, key)
	}
}
