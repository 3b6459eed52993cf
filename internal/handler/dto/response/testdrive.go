package response

import (
	"time"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/usecase/queries"
	"testdrive-hub/internal/usecase/shared"

	"github.com/jinzhu/copier"
)

type TestDriveForm struct {
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	LicenseType           string `json:"licenseType"`
	DrivingExperience     string `json:"drivingExperience"`
	PreferredDate         string `json:"preferredDate"`
	PreferredTime         string `json:"preferredTime"`
	MeetingLocation       string `json:"meetingLocation"`
	CustomLocation        string `json:"customLocation,omitempty"`
	EmergencyContactName  string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string `json:"emergencyContactPhone,omitempty"`
	AdditionalNotes       string `json:"additionalNotes,omitempty"`
}

func FromPayload(p testdrive.Payload) TestDriveForm {
	var f TestDriveForm
	// identical field sets; copier cannot fail here
	_ = copier.Copy(&f, &p)
	return f
}

type RescheduleProposalResponse struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type TestDriveRequestResponse struct {
	ID                 string                      `json:"id"`
	VehicleID          string                      `json:"vehicleId"`
	VehicleTitle       string                      `json:"vehicleTitle"`
	VehiclePriceCents  int64                       `json:"vehiclePriceCents"`
	SellerEmail        string                      `json:"sellerEmail"`
	SellerName         string                      `json:"sellerName"`
	BuyerData          TestDriveForm               `json:"buyerData"`
	Status             string                      `json:"status"`
	Timestamp          time.Time                   `json:"timestamp"`
	RespondedAt        *time.Time                  `json:"respondedAt,omitempty"`
	ResponseMessage    string                      `json:"responseMessage,omitempty"`
	RescheduleProposal *RescheduleProposalResponse `json:"rescheduleProposal,omitempty"`
	ScheduledAt        time.Time                   `json:"scheduledAt"`
	ClosedAt           *time.Time                  `json:"closedAt,omitempty"`
	UpdatedAt          time.Time                   `json:"updatedAt"`
	AllowedActions     []string                    `json:"allowedActions"`
	CalendarAvailable  bool                        `json:"calendarAvailable"`
}

func FromRequestView(v *queries.TestDriveRequestView) *TestDriveRequestResponse {
	res := &TestDriveRequestResponse{
		ID:                v.ID.String(),
		VehicleID:         v.VehicleID,
		VehicleTitle:      v.VehicleTitle,
		VehiclePriceCents: v.VehiclePriceCents,
		SellerEmail:       v.SellerEmail,
		SellerName:        v.SellerName,
		BuyerData:         FromPayload(v.BuyerData),
		Status:            v.Status.String(),
		Timestamp:         v.Timestamp,
		RespondedAt:       v.RespondedAt,
		ResponseMessage:   v.ResponseMessage,
		ScheduledAt:       v.ScheduledAt,
		ClosedAt:          v.ClosedAt,
		UpdatedAt:         v.UpdatedAt,
		AllowedActions:    make([]string, len(v.AllowedActions)),
		CalendarAvailable: v.CalendarAvailable,
	}
	for i, a := range v.AllowedActions {
		res.AllowedActions[i] = string(a)
	}
	if p := v.RescheduleProposal; p != nil {
		res.RescheduleProposal = &RescheduleProposalResponse{Date: p.Date, Time: p.Time}
	}
	return res
}

func FromRequestViews(views []*queries.TestDriveRequestView) []*TestDriveRequestResponse {
	res := make([]*TestDriveRequestResponse, len(views))
	for i, v := range views {
		res[i] = FromRequestView(v)
	}
	return res
}

type HistoryEntryResponse struct {
	Action  string    `json:"action"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Actor   string    `json:"actor"`
	Message string    `json:"message,omitempty"`
	At      time.Time `json:"at"`
}

func FromHistory(entries []shared.HistoryEntry) []*HistoryEntryResponse {
	res := make([]*HistoryEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = &HistoryEntryResponse{
			Action:  e.Action,
			From:    e.From.String(),
			To:      e.To.String(),
			Actor:   e.Actor,
			Message: e.Message,
			At:      e.At,
		}
	}
	return res
}

type FieldErrorResponse struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func FromFieldErrors(fe testdrive.FieldErrors) []FieldErrorResponse {
	sorted := fe.Sorted()
	res := make([]FieldErrorResponse, len(sorted))
	for i, e := range sorted {
		res[i] = FieldErrorResponse{Field: string(e.Field), Code: e.Code, Message: e.Message}
	}
	return res
}

type ValidationResponse struct {
	Valid  bool                 `json:"valid"`
	Errors []FieldErrorResponse `json:"errors"`
}

type DraftResponse struct {
	VehicleID string        `json:"vehicleId"`
	Payload   TestDriveForm `json:"payload"`
	SavedAt   time.Time     `json:"savedAt"`
}

type AutosaveResponse struct {
	Payload    TestDriveForm       `json:"payload"`
	FieldError *FieldErrorResponse `json:"fieldError,omitempty"`
	Pending    bool                `json:"pending"`
}

type CalendarEventResponse struct {
	UID         string    `json:"uid"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

type CalendarLinksResponse struct {
	Event CalendarEventResponse `json:"event"`
	Links map[string]string     `json:"links"`
}

func FromCalendarLinks(v *queries.CalendarLinksView) *CalendarLinksResponse {
	links := make(map[string]string, len(v.Links))
	for p, link := range v.Links {
		links[string(p)] = link
	}
	return &CalendarLinksResponse{
		Event: CalendarEventResponse{
			UID:         v.Event.UID,
			Title:       v.Event.Title,
			Description: v.Event.Description,
			Location:    v.Event.Location,
			Start:       v.Event.Start,
			End:         v.Event.End,
		},
		Links: links,
	}
}
