package testdrive

import (
	"strings"
	"time"
)

type Field string

const (
	FieldName                  Field = "name"
	FieldEmail                 Field = "email"
	FieldPhone                 Field = "phone"
	FieldLicenseType           Field = "licenseType"
	FieldDrivingExperience     Field = "drivingExperience"
	FieldPreferredDate         Field = "preferredDate"
	FieldPreferredTime         Field = "preferredTime"
	FieldMeetingLocation       Field = "meetingLocation"
	FieldCustomLocation        Field = "customLocation"
	FieldEmergencyContactName  Field = "emergencyContactName"
	FieldEmergencyContactPhone Field = "emergencyContactPhone"
	FieldAdditionalNotes       Field = "additionalNotes"
)

// Fields is the form order; validation reports follow it.
var Fields = []Field{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldLicenseType,
	FieldDrivingExperience,
	FieldPreferredDate,
	FieldPreferredTime,
	FieldMeetingLocation,
	FieldCustomLocation,
	FieldEmergencyContactName,
	FieldEmergencyContactPhone,
	FieldAdditionalNotes,
}

func (f Field) IsValid() bool {
	for _, known := range Fields {
		if known == f {
			return true
		}
	}
	return false
}

type LicenseType string

const (
	LicenseFull          LicenseType = "full"
	LicenseProvisional   LicenseType = "provisional"
	LicenseInternational LicenseType = "international"
)

type DrivingExperience string

const (
	ExperienceBeginner     DrivingExperience = "beginner"
	ExperienceIntermediate DrivingExperience = "intermediate"
	ExperienceExperienced  DrivingExperience = "experienced"
)

type MeetingLocation string

const (
	MeetingAtSeller MeetingLocation = "seller"
	MeetingAtOffice MeetingLocation = "office"
	MeetingInPublic MeetingLocation = "public"
	MeetingCustom   MeetingLocation = "custom"
)

var (
	licenseTypes       = []string{string(LicenseFull), string(LicenseProvisional), string(LicenseInternational)}
	drivingExperiences = []string{string(ExperienceBeginner), string(ExperienceIntermediate), string(ExperienceExperienced)}
	meetingLocations   = []string{string(MeetingAtSeller), string(MeetingAtOffice), string(MeetingInPublic), string(MeetingCustom)}
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Payload is the buyer's form data. Fields hold raw input so partially filled drafts round-trip.
type Payload struct {
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

func (p Payload) Get(field Field) string {
	switch field {
	case FieldName:
		return p.Name
	case FieldEmail:
		return p.Email
	case FieldPhone:
		return p.Phone
	case FieldLicenseType:
		return p.LicenseType
	case FieldDrivingExperience:
		return p.DrivingExperience
	case FieldPreferredDate:
		return p.PreferredDate
	case FieldPreferredTime:
		return p.PreferredTime
	case FieldMeetingLocation:
		return p.MeetingLocation
	case FieldCustomLocation:
		return p.CustomLocation
	case FieldEmergencyContactName:
		return p.EmergencyContactName
	case FieldEmergencyContactPhone:
		return p.EmergencyContactPhone
	case FieldAdditionalNotes:
		return p.AdditionalNotes
	default:
		return ""
	}
}

// Set applies a single field edit. Changing the date drops the selected time,
// since available slots depend on the day.
func (p Payload) Set(field Field, value string) Payload {
	switch field {
	case FieldName:
		p.Name = value
	case FieldEmail:
		p.Email = value
	case FieldPhone:
		p.Phone = value
	case FieldLicenseType:
		p.LicenseType = value
	case FieldDrivingExperience:
		p.DrivingExperience = value
	case FieldPreferredDate:
		if value != p.PreferredDate {
			p.PreferredTime = ""
		}
		p.PreferredDate = value
	case FieldPreferredTime:
		p.PreferredTime = value
	case FieldMeetingLocation:
		p.MeetingLocation = value
	case FieldCustomLocation:
		p.CustomLocation = value
	case FieldEmergencyContactName:
		p.EmergencyContactName = value
	case FieldEmergencyContactPhone:
		p.EmergencyContactPhone = value
	case FieldAdditionalNotes:
		p.AdditionalNotes = value
	}
	return p
}

// Normalized trims every field and drops customLocation unless the custom option is chosen.
func (p Payload) Normalized() Payload {
	out := Payload{}
	for _, f := range Fields {
		out = out.setRaw(f, strings.TrimSpace(p.Get(f)))
	}
	if out.MeetingLocation != string(MeetingCustom) {
		out.CustomLocation = ""
	}
	return out
}

// setRaw assigns without the date/time coupling of Set.
func (p Payload) setRaw(field Field, value string) Payload {
	if field == FieldPreferredDate {
		p.PreferredDate = value
		return p
	}
	return p.Set(field, value)
}

// IsZero reports whether nothing has been entered yet.
func (p Payload) IsZero() bool {
	return p == Payload{}
}

type RescheduleProposal struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// AppointmentStart combines a calendar date and a wall-clock time in loc.
func AppointmentStart(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock), loc)
}

type VehicleData struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	PriceCents  int64  `json:"priceCents" yaml:"price_cents"`
	SellerEmail string `json:"sellerEmail" yaml:"seller_email"`
	SellerName  string `json:"sellerName" yaml:"seller_name"`
}
