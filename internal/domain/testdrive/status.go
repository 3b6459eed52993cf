package testdrive

import "errors"

var (
	ErrInvalidStatus = errors.New("invalid test drive status")
	ErrInvalidAction = errors.New("invalid test drive action")
)

type Status string

const (
	StatusDraft       Status = "draft"
	StatusSending     Status = "sending"
	StatusSent        Status = "sent"
	StatusConfirmed   Status = "confirmed"
	StatusRescheduled Status = "rescheduled"
	StatusDeclined    Status = "declined"
	StatusCancelled   Status = "cancelled"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSending, StatusSent, StatusConfirmed, StatusRescheduled,
		StatusDeclined, StatusCancelled, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusFailed, StatusCompleted, StatusCancelled, StatusDeclined:
		return true
	default:
		return false
	}
}

// IsPersistable reports whether a request in this status may be written to the store.
// draft lives in the draft store, sending and failed only in memory.
func (s Status) IsPersistable() bool {
	switch s {
	case StatusDraft, StatusSending, StatusFailed:
		return false
	default:
		return s.IsValid()
	}
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type Action string

const (
	ActionConfirm    Action = "confirm"
	ActionReschedule Action = "reschedule"
	ActionDecline    Action = "decline"
	ActionCancel     Action = "cancel"
	ActionComplete   Action = "complete"
)

func (a Action) String() string {
	return string(a)
}

func (a Action) IsValid() bool {
	switch a {
	case ActionConfirm, ActionReschedule, ActionDecline, ActionCancel, ActionComplete:
		return true
	default:
		return false
	}
}

// IsSellerResponse reports whether the action is one of the seller's replies to a sent request.
func (a Action) IsSellerResponse() bool {
	switch a {
	case ActionConfirm, ActionReschedule, ActionDecline:
		return true
	default:
		return false
	}
}

func ParseAction(s string) (Action, error) {
	action := Action(s)
	if !action.IsValid() {
		return "", ErrInvalidAction
	}
	return action, nil
}

// transitions is the complete table of party-driven state changes.
// submit / persist ok / persist error are handled by NewRequest, MarkSent and MarkFailed.
var transitions = map[Status]map[Action]Status{
	StatusSent: {
		ActionConfirm:    StatusConfirmed,
		ActionReschedule: StatusRescheduled,
		ActionDecline:    StatusDeclined,
		ActionCancel:     StatusCancelled,
	},
	StatusConfirmed: {
		ActionComplete: StatusCompleted,
		ActionCancel:   StatusCancelled,
	},
	StatusRescheduled: {
		ActionComplete: StatusCompleted,
		ActionCancel:   StatusCancelled,
	},
}

// NextStatus looks up the target of action from the given status.
func NextStatus(from Status, action Action) (Status, bool) {
	if from.IsTerminal() {
		return "", false
	}
	to, ok := transitions[from][action]
	return to, ok
}

// AllowedActions lists the actions accepted from the given status in a stable order.
func AllowedActions(from Status) []Action {
	order := []Action{ActionConfirm, ActionReschedule, ActionDecline, ActionCancel, ActionComplete}
	var out []Action
	for _, a := range order {
		if _, ok := NextStatus(from, a); ok {
			out = append(out, a)
		}
	}
	return out
}
