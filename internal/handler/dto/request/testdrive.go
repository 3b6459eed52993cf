package request

import (
	"testdrive-hub/internal/domain/testdrive"

	"github.com/jinzhu/copier"
)

// TestDriveForm is the buyer's form as typed. Field rules live in the domain validator so
// partially filled drafts bind without errors.
type TestDriveForm struct {
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	LicenseType           string `json:"licenseType"`
	DrivingExperience     string `json:"drivingExperience"`
	PreferredDate         string `json:"preferredDate"`
	PreferredTime         string `json:"preferredTime"`
	MeetingLocation       string `json:"meetingLocation"`
	CustomLocation        string `json:"customLocation"`
	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`
	AdditionalNotes       string `json:"additionalNotes"`
}

func (f *TestDriveForm) ToDomain() (testdrive.Payload, error) {
	var p testdrive.Payload
	if err := copier.Copy(&p, f); err != nil {
		return testdrive.Payload{}, err
	}
	return p, nil
}

type ValidateRequest struct {
	Payload TestDriveForm `json:"payload"`
	// Field limits validation to one field; empty validates the whole form.
	Field string `json:"field"`
}

type AutosaveRequest struct {
	Current TestDriveForm `json:"current"`
	Field   string        `json:"field" binding:"required"`
	Value   string        `json:"value"`
}

type RescheduleProposalRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type RespondRequest struct {
	Action   string                     `json:"action" binding:"required,oneof=confirm reschedule decline cancel"`
	Message  *string                    `json:"message" binding:"omitempty,max=1000"`
	Proposal *RescheduleProposalRequest `json:"proposal"`
}

func (r *RespondRequest) ToDomain() (testdrive.Action, string, *testdrive.RescheduleProposal, error) {
	action, err := testdrive.ParseAction(r.Action)
	if err != nil {
		return "", "", nil, err
	}
	var proposal *testdrive.RescheduleProposal
	if r.Proposal != nil {
		proposal = &testdrive.RescheduleProposal{Date: r.Proposal.Date, Time: r.Proposal.Time}
	}
	var message string
	if r.Message != nil {
		message = *r.Message
	}
	return action, message, proposal, nil
}
