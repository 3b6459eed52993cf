package testdrive

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// AppointmentDuration is the length of a test drive slot.
const AppointmentDuration = time.Hour

// Actor is whoever triggers a transition. The zero Email with System set is the completion sweeper.
type Actor struct {
	Email  string
	Name   string
	System bool
}

func SystemActor() Actor {
	return Actor{Name: "system", System: true}
}

// Transition is one party-driven state change request.
type Transition struct {
	Action   Action
	Actor    Actor
	Message  string
	Proposal *RescheduleProposal
}

type Request struct {
	id                 uuid.UUID
	vehicle            VehicleData
	buyerData          Payload
	status             Status
	timestamp          time.Time
	respondedAt        *time.Time
	responseMessage    string
	rescheduleProposal *RescheduleProposal
	scheduledAt        time.Time
	closedAt           *time.Time
	updatedAt          time.Time
}

// NewRequest validates the payload and creates a request in the sending state.
func NewRequest(payload Payload, vehicle VehicleData, rules Rules, now time.Time) (*Request, error) {
	payload = payload.Normalized()
	if fe := ValidateAll(payload, rules, now); len(fe) > 0 {
		return nil, NewValidationError(fe)
	}

	start, err := AppointmentStart(payload.PreferredDate, payload.PreferredTime, rules.location())
	if err != nil {
		return nil, NewValidationError(FieldErrors{
			FieldPreferredTime: *fieldError(FieldPreferredTime, CodeInvalidFormat, "preferred time must be HH:MM"),
		})
	}

	return &Request{
		id:          uuid.New(),
		vehicle:     vehicle,
		buyerData:   payload,
		status:      StatusSending,
		timestamp:   now,
		scheduledAt: start,
		updatedAt:   now,
	}, nil
}

// MarkSent records a successful persist.
func (r *Request) MarkSent(now time.Time) error {
	if r.status != StatusSending {
		return &InvalidTransitionError{RequestID: r.id, From: r.status, Reason: "request is not being sent"}
	}
	r.status = StatusSent
	r.updatedAt = now
	return nil
}

// MarkFailed records a failed persist. A failed request is never written to the store.
func (r *Request) MarkFailed(now time.Time) error {
	if r.status != StatusSending {
		return &InvalidTransitionError{RequestID: r.id, From: r.status, Reason: "request is not being sent"}
	}
	r.status = StatusFailed
	r.updatedAt = now
	return nil
}

// Apply performs a party-driven transition. On error the request is left untouched.
func (r *Request) Apply(t Transition, rules Rules, now time.Time) error {
	to, ok := NextStatus(r.status, t.Action)
	if !ok {
		return &InvalidTransitionError{RequestID: r.id, From: r.status, Action: t.Action}
	}
	if !r.permits(t.Action, t.Actor) {
		return ErrActorNotPermitted
	}

	message := strings.TrimSpace(t.Message)
	if utf8.RuneCountInString(message) > maxResponseMessage {
		return NewValidationError(FieldErrors{
			"message": FieldError{Field: "message", Code: CodeTooLong, Message: "message must be at most 1000 characters"},
		})
	}

	switch t.Action {
	case ActionConfirm:
		r.respond(message, now)
		r.rescheduleProposal = nil
	case ActionReschedule:
		if fe := ValidateProposal(t.Proposal, rules, now); len(fe) > 0 {
			return NewValidationError(fe)
		}
		start, err := AppointmentStart(t.Proposal.Date, t.Proposal.Time, rules.location())
		if err != nil {
			return NewValidationError(FieldErrors{
				FieldPreferredTime: *fieldError(FieldPreferredTime, CodeInvalidFormat, "proposed time must be HH:MM"),
			})
		}
		r.respond(message, now)
		r.rescheduleProposal = &RescheduleProposal{
			Date: strings.TrimSpace(t.Proposal.Date),
			Time: strings.TrimSpace(t.Proposal.Time),
		}
		r.scheduledAt = start
	case ActionDecline:
		if message == "" {
			return NewValidationError(FieldErrors{
				"message": FieldError{Field: "message", Code: CodeRequired, Message: "a reason is required to decline"},
			})
		}
		r.respond(message, now)
		r.rescheduleProposal = nil
	case ActionComplete:
		if now.Before(r.scheduledAt.Add(AppointmentDuration)) {
			return &InvalidTransitionError{
				RequestID: r.id, From: r.status, Action: t.Action,
				Reason: "appointment has not taken place yet",
			}
		}
		r.close(now)
	case ActionCancel:
		r.close(now)
	}

	r.status = to
	r.updatedAt = now
	return nil
}

func (r *Request) respond(message string, now time.Time) {
	at := now
	r.respondedAt = &at
	r.responseMessage = message
}

// close clears the response timestamp and proposal, which only describe an open request.
func (r *Request) close(now time.Time) {
	at := now
	r.respondedAt = nil
	r.rescheduleProposal = nil
	r.closedAt = &at
}

func (r *Request) permits(action Action, actor Actor) bool {
	switch {
	case action == ActionComplete:
		return actor.System
	case actor.System:
		return false
	case action.IsSellerResponse():
		return r.IsSeller(actor.Email)
	case action == ActionCancel:
		return r.IsSeller(actor.Email) || r.IsBuyer(actor.Email)
	default:
		return false
	}
}

// ActionsFor lists what actor may do next, in transition table order.
func (r *Request) ActionsFor(actor Actor) []Action {
	out := make([]Action, 0)
	for _, a := range AllowedActions(r.status) {
		if r.permits(a, actor) {
			out = append(out, a)
		}
	}
	return out
}

func (r *Request) IsSeller(email string) bool {
	return email != "" && strings.EqualFold(strings.TrimSpace(email), r.vehicle.SellerEmail)
}

func (r *Request) IsBuyer(email string) bool {
	return email != "" && strings.EqualFold(strings.TrimSpace(email), r.buyerData.Email)
}

// CounterpartyOf returns the email of the other participant, used for notifications.
func (r *Request) CounterpartyOf(actor Actor) string {
	if r.IsSeller(actor.Email) {
		return r.buyerData.Email
	}
	return r.vehicle.SellerEmail
}

// AppointmentEnd is the end of the currently scheduled slot.
func (r *Request) AppointmentEnd() time.Time {
	return r.scheduledAt.Add(AppointmentDuration)
}

func (r *Request) ID() uuid.UUID                           { return r.id }
func (r *Request) VehicleID() string                       { return r.vehicle.ID }
func (r *Request) Vehicle() VehicleData                    { return r.vehicle }
func (r *Request) BuyerData() Payload                      { return r.buyerData }
func (r *Request) Status() Status                          { return r.status }
func (r *Request) Timestamp() time.Time                    { return r.timestamp }
func (r *Request) RespondedAt() *time.Time                 { return r.respondedAt }
func (r *Request) ResponseMessage() string                 { return r.responseMessage }
func (r *Request) RescheduleProposal() *RescheduleProposal { return r.rescheduleProposal }
func (r *Request) ScheduledAt() time.Time                  { return r.scheduledAt }
func (r *Request) ClosedAt() *time.Time                    { return r.closedAt }
func (r *Request) UpdatedAt() time.Time                    { return r.updatedAt }

// Snapshot is the flat persisted form of a Request.
type Snapshot struct {
	ID                 uuid.UUID
	Vehicle            VehicleData
	BuyerData          Payload
	Status             Status
	Timestamp          time.Time
	RespondedAt        *time.Time
	ResponseMessage    string
	RescheduleProposal *RescheduleProposal
	ScheduledAt        time.Time
	ClosedAt           *time.Time
	UpdatedAt          time.Time
}

func (r *Request) Snapshot() Snapshot {
	s := Snapshot{
		ID:              r.id,
		Vehicle:         r.vehicle,
		BuyerData:       r.buyerData,
		Status:          r.status,
		Timestamp:       r.timestamp,
		ResponseMessage: r.responseMessage,
		ScheduledAt:     r.scheduledAt,
		UpdatedAt:       r.updatedAt,
	}
	if r.respondedAt != nil {
		at := *r.respondedAt
		s.RespondedAt = &at
	}
	if r.rescheduleProposal != nil {
		p := *r.rescheduleProposal
		s.RescheduleProposal = &p
	}
	if r.closedAt != nil {
		at := *r.closedAt
		s.ClosedAt = &at
	}
	return s
}

// Reconstruct rebuilds a request from storage without re-running validation.
func Reconstruct(s Snapshot) *Request {
	r := &Request{
		id:              s.ID,
		vehicle:         s.Vehicle,
		buyerData:       s.BuyerData,
		status:          s.Status,
		timestamp:       s.Timestamp,
		responseMessage: s.ResponseMessage,
		scheduledAt:     s.ScheduledAt,
		updatedAt:       s.UpdatedAt,
	}
	if s.RespondedAt != nil {
		at := *s.RespondedAt
		r.respondedAt = &at
	}
	if s.RescheduleProposal != nil {
		p := *s.RescheduleProposal
		r.rescheduleProposal = &p
	}
	if s.ClosedAt != nil {
		at := *s.ClosedAt
		r.closedAt = &at
	}
	return r
}

// Clone returns an independent copy, so a failed write can leave the caller's value untouched.
func (r *Request) Clone() *Request {
	return Reconstruct(r.Snapshot())
}
