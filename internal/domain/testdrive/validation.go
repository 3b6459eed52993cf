package testdrive

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"testdrive-hub/internal/domain/user"
)

const (
	CodeRequired      = "required"
	CodeInvalidFormat = "invalid_format"
	CodeInvalidChoice = "invalid_choice"
	CodeTooSoon       = "too_soon"
	CodeTooFar        = "too_far"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
)

const (
	minPhoneDigits     = 10
	maxNameLength      = 100
	maxNotesLength     = 1000
	maxLocationLength  = 200
	maxResponseMessage = 1000
)

// Rules are the business constants the date and time checks depend on.
type Rules struct {
	Location       *time.Location
	MinLeadTime    time.Duration
	MaxHorizonDays int
}

func DefaultRules() Rules {
	return Rules{
		Location:       time.FixedZone("JST", 9*60*60),
		MinLeadTime:    24 * time.Hour,
		MaxHorizonDays: 30,
	}
}

func (r Rules) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

// ValidationContext carries everything a single-field check may look at besides the value.
type ValidationContext struct {
	Rules Rules
	Now   time.Time
	Form  Payload
}

type FieldError struct {
	Field   Field  `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldErrors maps each invalid field to its error. Empty means the payload is valid.
type FieldErrors map[Field]FieldError

// Sorted returns the errors in form order. Keys outside the form, such as "message", come last.
func (fe FieldErrors) Sorted() []FieldError {
	out := make([]FieldError, 0, len(fe))
	for _, f := range Fields {
		if e, ok := fe[f]; ok {
			out = append(out, e)
		}
	}
	var extra []Field
	for f := range fe {
		if !f.IsValid() {
			extra = append(extra, f)
		}
	}
	slices.Sort(extra)
	for _, f := range extra {
		out = append(out, fe[f])
	}
	return out
}

func fieldError(field Field, code, msg string) *FieldError {
	return &FieldError{Field: field, Code: code, Message: msg}
}

// ValidateField checks one field against its rule. It returns nil when the value is acceptable.
func ValidateField(field Field, value string, vc ValidationContext) *FieldError {
	value = strings.TrimSpace(value)

	switch field {
	case FieldName:
		if value == "" {
			return fieldError(field, CodeRequired, "name is required")
		}
		if utf8.RuneCountInString(value) > maxNameLength {
			return fieldError(field, CodeTooLong, "name is too long")
		}
	case FieldEmail:
		if value == "" {
			return fieldError(field, CodeRequired, "email is required")
		}
		if _, err := user.NewEmail(value); err != nil {
			return fieldError(field, CodeInvalidFormat, "email address is invalid")
		}
	case FieldPhone:
		if value == "" {
			return fieldError(field, CodeRequired, "phone number is required")
		}
		if countDigits(value) < minPhoneDigits {
			return fieldError(field, CodeInvalidFormat, "phone number must contain at least 10 digits")
		}
	case FieldLicenseType:
		return checkChoice(field, value, licenseTypes, "license type")
	case FieldDrivingExperience:
		return checkChoice(field, value, drivingExperiences, "driving experience")
	case FieldPreferredDate:
		return validateDate(field, value, vc.Form.PreferredTime, vc.Rules, vc.Now)
	case FieldPreferredTime:
		if value == "" {
			if strings.TrimSpace(vc.Form.PreferredDate) == "" {
				return nil
			}
			return fieldError(field, CodeRequired, "preferred time is required")
		}
		if _, err := time.Parse(TimeLayout, value); err != nil {
			return fieldError(field, CodeInvalidFormat, "preferred time must be HH:MM")
		}
	case FieldMeetingLocation:
		return checkChoice(field, value, meetingLocations, "meeting location")
	case FieldCustomLocation:
		if strings.TrimSpace(vc.Form.MeetingLocation) != string(MeetingCustom) {
			return nil
		}
		if value == "" {
			return fieldError(field, CodeRequired, "custom location is required")
		}
		if utf8.RuneCountInString(value) > maxLocationLength {
			return fieldError(field, CodeTooLong, "custom location is too long")
		}
	case FieldEmergencyContactName:
		if utf8.RuneCountInString(value) > maxNameLength {
			return fieldError(field, CodeTooLong, "emergency contact name is too long")
		}
	case FieldEmergencyContactPhone:
		if value != "" && countDigits(value) < minPhoneDigits {
			return fieldError(field, CodeInvalidFormat, "emergency contact phone must contain at least 10 digits")
		}
	case FieldAdditionalNotes:
		if utf8.RuneCountInString(value) > maxNotesLength {
			return fieldError(field, CodeTooLong, "additional notes must be at most 1000 characters")
		}
	}
	return nil
}

// ValidateAll runs every field rule against the payload.
func ValidateAll(p Payload, rules Rules, now time.Time) FieldErrors {
	vc := ValidationContext{Rules: rules, Now: now, Form: p}
	out := FieldErrors{}
	for _, f := range Fields {
		if fe := ValidateField(f, p.Get(f), vc); fe != nil {
			out[f] = *fe
		}
	}
	return out
}

// ValidateProposal applies the preferred date rules to a seller's alternative slot.
func ValidateProposal(p *RescheduleProposal, rules Rules, now time.Time) FieldErrors {
	out := FieldErrors{}
	if p == nil {
		out[FieldPreferredDate] = *fieldError(FieldPreferredDate, CodeRequired, "a reschedule proposal is required")
		return out
	}
	if strings.TrimSpace(p.Time) == "" {
		out[FieldPreferredTime] = *fieldError(FieldPreferredTime, CodeRequired, "proposed time is required")
	} else if _, err := time.Parse(TimeLayout, strings.TrimSpace(p.Time)); err != nil {
		out[FieldPreferredTime] = *fieldError(FieldPreferredTime, CodeInvalidFormat, "proposed time must be HH:MM")
	}
	clock := p.Time
	if _, bad := out[FieldPreferredTime]; bad {
		clock = ""
	}
	if fe := validateDate(FieldPreferredDate, p.Date, clock, rules, now); fe != nil {
		out[FieldPreferredDate] = *fe
	}
	return out
}

// validateDate enforces the booking window: strictly after today and within the horizon,
// and when a time is known, strictly later than now plus the lead time.
func validateDate(field Field, value, clock string, rules Rules, now time.Time) *FieldError {
	value = strings.TrimSpace(value)
	if value == "" {
		return fieldError(field, CodeRequired, "preferred date is required")
	}
	loc := rules.location()
	day, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return fieldError(field, CodeInvalidFormat, "preferred date must be YYYY-MM-DD")
	}

	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	if !day.After(today) {
		return fieldError(field, CodeTooSoon, "preferred date must be tomorrow or later")
	}
	if day.After(today.AddDate(0, 0, rules.MaxHorizonDays)) {
		return fieldError(field, CodeTooFar, "preferred date is too far in the future")
	}

	clock = strings.TrimSpace(clock)
	if clock == "" {
		return nil
	}
	start, err := AppointmentStart(value, clock, loc)
	if err != nil {
		// malformed time is reported on its own field
		return nil
	}
	if !start.After(now.Add(rules.MinLeadTime)) {
		return fieldError(field, CodeTooSoon, "appointment must be at least 24 hours from now")
	}
	return nil
}

func checkChoice(field Field, value string, choices []string, label string) *FieldError {
	if value == "" {
		return fieldError(field, CodeRequired, label+" is required")
	}
	if !slices.Contains(choices, value) {
		return fieldError(field, CodeInvalidChoice, label+" is not a valid option")
	}
	return nil
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
