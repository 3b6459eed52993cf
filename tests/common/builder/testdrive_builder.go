//go:build unit || e2e

package builder

import (
	"time"

	"testdrive-hub/internal/domain/testdrive"
	reqdto "testdrive-hub/internal/handler/dto/request"
)

// FixedNow is Monday 2025-03-10 09:00 in Tokyo.
var FixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, testdrive.DefaultRules().Location)

type TestDriveBuilder struct {
	Payload testdrive.Payload
	Vehicle testdrive.VehicleData
	Rules   testdrive.Rules
	Now     time.Time
}

func NewTestDriveBuilder() *TestDriveBuilder {
	return &TestDriveBuilder{
		Payload: testdrive.Payload{
			Name:              "Hanako Sato",
			Email:             "buyer@example.com",
			Phone:             "090-1234-5678",
			LicenseType:       string(testdrive.LicenseFull),
			DrivingExperience: string(testdrive.ExperienceExperienced),
			PreferredDate:     FixedNow.AddDate(0, 0, 3).Format(testdrive.DateLayout),
			PreferredTime:     "10:00",
			MeetingLocation:   string(testdrive.MeetingAtSeller),
		},
		Vehicle: testdrive.VehicleData{
			ID:          "veh-001",
			Title:       "2019 Toyota Prius S",
			PriceCents:  1980000_00,
			SellerEmail: "seller@example.com",
			SellerName:  "Taro Yamada",
		},
		Rules: testdrive.DefaultRules(),
		Now:   FixedNow,
	}
}

func (b *TestDriveBuilder) With(mutate func(*TestDriveBuilder)) *TestDriveBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *TestDriveBuilder) BuildDomain() (*testdrive.Request, error) {
	return testdrive.NewRequest(b.Payload, b.Vehicle, b.Rules, b.Now)
}

// BuildInStatus drives a fresh request through the state machine to the given status.
// Terminal statuses reached through a seller response use a reason message.
func (b *TestDriveBuilder) BuildInStatus(status testdrive.Status) (*testdrive.Request, error) {
	req, err := b.BuildDomain()
	if err != nil {
		return nil, err
	}
	if status == testdrive.StatusSending {
		return req, nil
	}
	if status == testdrive.StatusFailed {
		return req, req.MarkFailed(b.Now)
	}
	if err := req.MarkSent(b.Now); err != nil {
		return nil, err
	}

	seller := b.SellerActor()
	switch status {
	case testdrive.StatusSent:
	case testdrive.StatusConfirmed:
		err = req.Apply(testdrive.Transition{Action: testdrive.ActionConfirm, Actor: seller, Message: "See you then"}, b.Rules, b.Now)
	case testdrive.StatusRescheduled:
		err = req.Apply(testdrive.Transition{Action: testdrive.ActionReschedule, Actor: seller, Proposal: b.Proposal()}, b.Rules, b.Now)
	case testdrive.StatusDeclined:
		err = req.Apply(testdrive.Transition{Action: testdrive.ActionDecline, Actor: seller, Message: "Vehicle already sold"}, b.Rules, b.Now)
	case testdrive.StatusCancelled:
		err = req.Apply(testdrive.Transition{Action: testdrive.ActionCancel, Actor: b.BuyerActor()}, b.Rules, b.Now)
	case testdrive.StatusCompleted:
		if err = req.Apply(testdrive.Transition{Action: testdrive.ActionConfirm, Actor: seller}, b.Rules, b.Now); err == nil {
			err = req.Apply(testdrive.Transition{Action: testdrive.ActionComplete, Actor: testdrive.SystemActor()}, b.Rules, b.Now.AddDate(0, 0, 5))
		}
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// BuildFormDTO is the request body a form submission carries.
func (b *TestDriveBuilder) BuildFormDTO() reqdto.TestDriveForm {
	p := b.Payload
	return reqdto.TestDriveForm{
		Name:                  p.Name,
		Email:                 p.Email,
		Phone:                 p.Phone,
		LicenseType:           p.LicenseType,
		DrivingExperience:     p.DrivingExperience,
		PreferredDate:         p.PreferredDate,
		PreferredTime:         p.PreferredTime,
		MeetingLocation:       p.MeetingLocation,
		CustomLocation:        p.CustomLocation,
		EmergencyContactName:  p.EmergencyContactName,
		EmergencyContactPhone: p.EmergencyContactPhone,
		AdditionalNotes:       p.AdditionalNotes,
	}
}

func (b *TestDriveBuilder) SellerActor() testdrive.Actor {
	return testdrive.Actor{Email: b.Vehicle.SellerEmail, Name: b.Vehicle.SellerName}
}

func (b *TestDriveBuilder) BuyerActor() testdrive.Actor {
	return testdrive.Actor{Email: b.Payload.Email, Name: b.Payload.Name}
}

// Proposal is a valid alternative slot one day after the preferred date.
func (b *TestDriveBuilder) Proposal() *testdrive.RescheduleProposal {
	return &testdrive.RescheduleProposal{
		Date: b.Now.AddDate(0, 0, 4).Format(testdrive.DateLayout),
		Time: "14:30",
	}
}

// Fluent builder methods
func (b *TestDriveBuilder) WithPayload(p testdrive.Payload) *TestDriveBuilder {
	b.Payload = p
	return b
}

func (b *TestDriveBuilder) WithField(field testdrive.Field, value string) *TestDriveBuilder {
	if field == testdrive.FieldPreferredDate {
		// keep the time; tests that want the reset call Payload.Set directly
		tm := b.Payload.PreferredTime
		b.Payload = b.Payload.Set(field, value)
		b.Payload.PreferredTime = tm
		return b
	}
	b.Payload = b.Payload.Set(field, value)
	return b
}

func (b *TestDriveBuilder) WithVehicle(v testdrive.VehicleData) *TestDriveBuilder {
	b.Vehicle = v
	return b
}

func (b *TestDriveBuilder) WithSellerEmail(email string) *TestDriveBuilder {
	b.Vehicle.SellerEmail = email
	return b
}

func (b *TestDriveBuilder) WithBuyerEmail(email string) *TestDriveBuilder {
	b.Payload.Email = email
	return b
}

func (b *TestDriveBuilder) WithNow(now time.Time) *TestDriveBuilder {
	b.Now = now
	return b
}

func (b *TestDriveBuilder) WithDaysAhead(days int) *TestDriveBuilder {
	b.Payload.PreferredDate = b.Now.AddDate(0, 0, days).Format(testdrive.DateLayout)
	return b
}
