package commands

import (
	"context"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/pkg/clock"
	"testdrive-hub/internal/pkg/errs"
	"testdrive-hub/internal/usecase/drafts"
)

var ErrUnknownField = errs.New("unknown form field")

// FieldEdit is one change made in the form.
type FieldEdit struct {
	Field testdrive.Field
	Value string
}

type AutosaveResult struct {
	// Payload is the form after the edit; a date change clears the chosen time.
	Payload    testdrive.Payload
	FieldError *testdrive.FieldError
	Pending    bool
}

type DraftCommands interface {
	Load(ctx context.Context, key drafts.Key) (*drafts.Draft, bool)
	Save(ctx context.Context, key drafts.Key, payload testdrive.Payload) bool
	Autosave(ctx context.Context, key drafts.Key, current testdrive.Payload, edit FieldEdit) (*AutosaveResult, error)
	Flush(ctx context.Context, key drafts.Key) bool
	Discard(ctx context.Context, key drafts.Key)
}

type draftUseCaseImpl struct {
	autosaver *drafts.Autosaver
	rules     testdrive.Rules
	clock     clock.Clock
}

func NewDraftUseCase(autosaver *drafts.Autosaver, rules testdrive.Rules, clock clock.Clock) DraftCommands {
	return &draftUseCaseImpl{
		autosaver: autosaver,
		rules:     rules,
		clock:     clock,
	}
}

// Load flushes a pending autosave first so the caller sees the latest edit.
func (u *draftUseCaseImpl) Load(ctx context.Context, key drafts.Key) (*drafts.Draft, bool) {
	u.autosaver.Flush(ctx, key)
	d, ok := u.autosaver.Store().LoadDraft(ctx, key)
	if !ok {
		return nil, false
	}
	return &d, true
}

// Save writes immediately and supersedes any pending autosave.
func (u *draftUseCaseImpl) Save(ctx context.Context, key drafts.Key, payload testdrive.Payload) bool {
	u.autosaver.Cancel(key)
	return u.autosaver.Store().SaveDraft(ctx, key, payload)
}

func (u *draftUseCaseImpl) Autosave(ctx context.Context, key drafts.Key, current testdrive.Payload, edit FieldEdit) (*AutosaveResult, error) {
	if !edit.Field.IsValid() {
		return nil, errs.Wrapf(ErrUnknownField, "field %q", edit.Field)
	}

	next := current.Set(edit.Field, edit.Value)
	pending := u.autosaver.Schedule(key, next)
	fe := testdrive.ValidateField(edit.Field, next.Get(edit.Field), testdrive.ValidationContext{
		Rules: u.rules,
		Now:   u.clock.Now(),
		Form:  next,
	})

	return &AutosaveResult{
		Payload:    next,
		FieldError: fe,
		Pending:    pending,
	}, nil
}

func (u *draftUseCaseImpl) Flush(ctx context.Context, key drafts.Key) bool {
	return u.autosaver.Flush(ctx, key)
}

func (u *draftUseCaseImpl) Discard(ctx context.Context, key drafts.Key) {
	u.autosaver.Discard(ctx, key)
}
