package queries

import (
	"context"

	"testdrive-hub/internal/domain/calendar"
	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/domain/user"
	"testdrive-hub/internal/pkg/errs"
	"testdrive-hub/internal/usecase/shared"
	"testdrive-hub/internal/usecase/store"

	"github.com/google/uuid"
)

var ErrAccessDenied = errs.New("access denied")

type TestDriveQueries interface {
	ListForSeller(ctx context.Context, seller user.Identity, status *testdrive.Status) ([]*TestDriveRequestView, error)
	ListForBuyer(ctx context.Context, buyer user.Identity) ([]*TestDriveRequestView, error)
	GetByID(ctx context.Context, id uuid.UUID, viewer user.Identity) (*TestDriveRequestView, error)
	History(ctx context.Context, id uuid.UUID, viewer user.Identity) ([]shared.HistoryEntry, error)
	Validate(payload testdrive.Payload, field *testdrive.Field) testdrive.FieldErrors
	CalendarFile(ctx context.Context, id uuid.UUID, viewer user.Identity) (*CalendarFile, error)
	CalendarLinks(ctx context.Context, id uuid.UUID, viewer user.Identity) (*CalendarLinksView, error)
}

type testDriveQueriesImpl struct {
	store    *store.RequestStore
	settings calendar.Settings
}

func NewTestDriveQueries(store *store.RequestStore, settings calendar.Settings) TestDriveQueries {
	return &testDriveQueriesImpl{
		store:    store,
		settings: settings,
	}
}

// ListForSeller is the seller dashboard: every request in insertion order, optionally one status only.
func (q *testDriveQueriesImpl) ListForSeller(ctx context.Context, seller user.Identity, status *testdrive.Status) ([]*TestDriveRequestView, error) {
	var (
		reqs []*testdrive.Request
		err  error
	)
	if status != nil {
		reqs, err = q.store.GetByStatus(ctx, seller.Email, *status)
	} else {
		reqs, err = q.store.GetBySeller(ctx, seller.Email)
	}
	if err != nil {
		return nil, err
	}
	return toViews(reqs, seller), nil
}

func (q *testDriveQueriesImpl) ListForBuyer(ctx context.Context, buyer user.Identity) ([]*TestDriveRequestView, error) {
	reqs, err := q.store.ListByBuyer(ctx, buyer.Email)
	if err != nil {
		return nil, err
	}
	return toViews(reqs, buyer), nil
}

func (q *testDriveQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, viewer user.Identity) (*TestDriveRequestView, error) {
	req, err := q.load(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	return ViewOf(req, viewer), nil
}

func (q *testDriveQueriesImpl) History(ctx context.Context, id uuid.UUID, viewer user.Identity) ([]shared.HistoryEntry, error) {
	if _, err := q.load(ctx, id, viewer); err != nil {
		return nil, err
	}
	return q.store.History(ctx, id)
}

// Validate checks one field when field is set, otherwise the whole payload.
func (q *testDriveQueriesImpl) Validate(payload testdrive.Payload, field *testdrive.Field) testdrive.FieldErrors {
	now := q.store.Now()
	rules := q.store.Rules()
	if field == nil {
		return testdrive.ValidateAll(payload, rules, now)
	}

	out := testdrive.FieldErrors{}
	vc := testdrive.ValidationContext{Rules: rules, Now: now, Form: payload}
	if fe := testdrive.ValidateField(*field, payload.Get(*field), vc); fe != nil {
		out[*field] = *fe
	}
	return out
}

func (q *testDriveQueriesImpl) CalendarFile(ctx context.Context, id uuid.UUID, viewer user.Identity) (*CalendarFile, error) {
	ev, err := q.event(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	data, err := calendar.ToFileFormat(ev, q.settings.ProdID)
	if err != nil {
		return nil, errs.Wrap(err, "render calendar file")
	}
	return &CalendarFile{FileName: calendar.FileName(ev), Content: data}, nil
}

func (q *testDriveQueriesImpl) CalendarLinks(ctx context.Context, id uuid.UUID, viewer user.Identity) (*CalendarLinksView, error) {
	ev, err := q.event(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	links, err := calendar.ProviderLinks(ev)
	if err != nil {
		return nil, errs.Wrap(err, "build calendar links")
	}
	return &CalendarLinksView{Event: ev, Links: links}, nil
}

func (q *testDriveQueriesImpl) event(ctx context.Context, id uuid.UUID, viewer user.Identity) (calendar.Event, error) {
	req, err := q.load(ctx, id, viewer)
	if err != nil {
		return calendar.Event{}, err
	}
	return calendar.ToEvent(req, q.settings)
}

// load returns the request only to its buyer, its seller or an admin.
func (q *testDriveQueriesImpl) load(ctx context.Context, id uuid.UUID, viewer user.Identity) (*testdrive.Request, error) {
	req, err := q.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer.Role != user.RoleAdmin && !req.IsSeller(viewer.Email) && !req.IsBuyer(viewer.Email) {
		return nil, ErrAccessDenied
	}
	return req, nil
}

func toViews(reqs []*testdrive.Request, viewer user.Identity) []*TestDriveRequestView {
	out := make([]*TestDriveRequestView, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, ViewOf(r, viewer))
	}
	return out
}

// ViewOf renders a request with the actions open to viewer.
func ViewOf(r *testdrive.Request, viewer user.Identity) *TestDriveRequestView {
	s := r.Snapshot()
	return &TestDriveRequestView{
		ID:                 s.ID,
		VehicleID:          s.Vehicle.ID,
		VehicleTitle:       s.Vehicle.Title,
		VehiclePriceCents:  s.Vehicle.PriceCents,
		SellerEmail:        s.Vehicle.SellerEmail,
		SellerName:         s.Vehicle.SellerName,
		BuyerData:          s.BuyerData,
		Status:             s.Status,
		Timestamp:          s.Timestamp,
		RespondedAt:        s.RespondedAt,
		ResponseMessage:    s.ResponseMessage,
		RescheduleProposal: s.RescheduleProposal,
		ScheduledAt:        s.ScheduledAt,
		ClosedAt:           s.ClosedAt,
		UpdatedAt:          s.UpdatedAt,
		AllowedActions:     r.ActionsFor(testdrive.Actor{Email: viewer.Email, Name: viewer.Name}),
		CalendarAvailable:  calendar.Exportable(s.Status),
	}
}
