package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"testdrive-hub/internal/domain/testdrive"
)

var ErrIncompleteEvent = errors.New("incomplete calendar event")

// IncompleteEventError is returned instead of a partial artifact.
type IncompleteEventError struct {
	RequestID string
	Missing   []string
	Status    testdrive.Status
}

func (e *IncompleteEventError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("request %s in status %s cannot be exported to a calendar", e.RequestID, e.Status)
	}
	return fmt.Sprintf("request %s is missing %s", e.RequestID, strings.Join(e.Missing, ", "))
}

func (e *IncompleteEventError) Is(target error) bool {
	return target == ErrIncompleteEvent
}

type Participant struct {
	Name  string
	Email string
}

type Event struct {
	UID         string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Stamp       time.Time
	Organizer   Participant
	Attendees   []Participant
}

// Settings maps the non-custom meeting options to concrete addresses and names the event source.
type Settings struct {
	ProdID         string
	UIDHost        string
	TimeZone       *time.Location
	SellerLocation string
	OfficeLocation string
	PublicLocation string
}

func (s Settings) location(p testdrive.Payload) string {
	switch testdrive.MeetingLocation(p.MeetingLocation) {
	case testdrive.MeetingAtSeller:
		return s.SellerLocation
	case testdrive.MeetingAtOffice:
		return s.OfficeLocation
	case testdrive.MeetingInPublic:
		return s.PublicLocation
	case testdrive.MeetingCustom:
		return p.CustomLocation
	default:
		return ""
	}
}

func (s Settings) zone() *time.Location {
	if s.TimeZone == nil {
		return testdrive.DefaultRules().Location
	}
	return s.TimeZone
}

// Exportable reports whether a request in this status has an agreed slot.
func Exportable(status testdrive.Status) bool {
	return status == testdrive.StatusConfirmed || status == testdrive.StatusRescheduled
}

// ToEvent projects an agreed appointment. The result depends only on the request and settings.
func ToEvent(req *testdrive.Request, s Settings) (Event, error) {
	id := req.ID().String()
	if !Exportable(req.Status()) {
		return Event{}, &IncompleteEventError{RequestID: id, Status: req.Status()}
	}

	buyer := req.BuyerData()
	vehicle := req.Vehicle()
	date, clock := buyer.PreferredDate, buyer.PreferredTime
	if p := req.RescheduleProposal(); p != nil {
		date, clock = p.Date, p.Time
	}

	var missing []string
	if strings.TrimSpace(date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(clock) == "" {
		missing = append(missing, "time")
	}
	if vehicle.SellerEmail == "" {
		missing = append(missing, "seller email")
	}
	if buyer.Email == "" {
		missing = append(missing, "buyer email")
	}
	if len(missing) > 0 {
		return Event{}, &IncompleteEventError{RequestID: id, Status: req.Status(), Missing: missing}
	}

	start, err := testdrive.AppointmentStart(date, clock, s.zone())
	if err != nil {
		return Event{}, &IncompleteEventError{RequestID: id, Status: req.Status(), Missing: []string{"valid date and time"}}
	}

	host := s.UIDHost
	if host == "" {
		host = "testdrive-hub"
	}
	seller := Participant{Name: vehicle.SellerName, Email: vehicle.SellerEmail}

	return Event{
		UID:         id + "@" + host,
		Title:       "Test drive: " + vehicle.Title,
		Description: describe(req),
		Location:    s.location(buyer),
		Start:       start,
		End:         start.Add(testdrive.AppointmentDuration),
		Stamp:       req.Timestamp(),
		Organizer:   seller,
		Attendees: []Participant{
			{Name: buyer.Name, Email: buyer.Email},
			seller,
		},
	}, nil
}

func describe(req *testdrive.Request) string {
	buyer := req.BuyerData()
	vehicle := req.Vehicle()

	lines := []string{
		"Vehicle: " + vehicle.Title,
		"Seller: " + vehicle.SellerName,
		"Buyer: " + buyer.Name + " (" + buyer.Phone + ")",
		"License: " + buyer.LicenseType + ", experience: " + buyer.DrivingExperience,
	}
	if buyer.EmergencyContactName != "" {
		lines = append(lines, "Emergency contact: "+buyer.EmergencyContactName+" "+buyer.EmergencyContactPhone)
	}
	if buyer.AdditionalNotes != "" {
		lines = append(lines, "Notes: "+buyer.AdditionalNotes)
	}
	if msg := req.ResponseMessage(); msg != "" {
		lines = append(lines, "Seller message: "+msg)
	}
	return strings.Join(lines, "\n")
}
