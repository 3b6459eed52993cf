package queries

import (
	"time"

	"testdrive-hub/internal/domain/calendar"
	"testdrive-hub/internal/domain/testdrive"

	"github.com/google/uuid"
)

type TestDriveRequestView struct {
	ID                 uuid.UUID
	VehicleID          string
	VehicleTitle       string
	VehiclePriceCents  int64
	SellerEmail        string
	SellerName         string
	BuyerData          testdrive.Payload
	Status             testdrive.Status
	Timestamp          time.Time
	RespondedAt        *time.Time
	ResponseMessage    string
	RescheduleProposal *testdrive.RescheduleProposal
	ScheduledAt        time.Time
	ClosedAt           *time.Time
	UpdatedAt          time.Time
	// AllowedActions is what the viewer may do next.
	AllowedActions    []testdrive.Action
	CalendarAvailable bool
}

type CalendarFile struct {
	FileName string
	Content  []byte
}

type CalendarLinksView struct {
	Event calendar.Event
	Links map[calendar.Provider]string
}
