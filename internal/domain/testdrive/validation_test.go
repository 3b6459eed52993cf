//go:build unit

package testdrive_test

import (
	"strings"
	"testing"
	"time"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationCase struct {
	name      string
	mutate    func(*builder.TestDriveBuilder)
	wantField testdrive.Field
	wantCode  string
}

func TestValidateAll(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		errs := testdrive.ValidateAll(b.Payload, b.Rules, b.Now)
		assert.Empty(t, errs)
	})

	t.Run("空のペイロードは必須項目すべてでエラー", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		errs := testdrive.ValidateAll(testdrive.Payload{}, b.Rules, b.Now)

		for _, f := range []testdrive.Field{
			testdrive.FieldName, testdrive.FieldEmail, testdrive.FieldPhone,
			testdrive.FieldLicenseType, testdrive.FieldDrivingExperience,
			testdrive.FieldPreferredDate, testdrive.FieldMeetingLocation,
		} {
			require.Contains(t, errs, f)
			assert.Equal(t, testdrive.CodeRequired, errs[f].Code, f)
		}
		assert.NotContains(t, errs, testdrive.FieldPreferredTime, "time waits for a date")
		assert.NotContains(t, errs, testdrive.FieldCustomLocation)
		assert.NotContains(t, errs, testdrive.FieldEmergencyContactPhone)
		assert.NotContains(t, errs, testdrive.FieldAdditionalNotes)
	})

	t.Run("preferred date window", func(t *testing.T) {
		runValidationCases(t, []validationCase{
			{
				name:      "today is too soon",
				mutate:    func(b *builder.TestDriveBuilder) { b.WithDaysAhead(0) },
				wantField: testdrive.FieldPreferredDate,
				wantCode:  testdrive.CodeTooSoon,
			},
			{
				name:      "yesterday is too soon",
				mutate:    func(b *builder.TestDriveBuilder) { b.WithDaysAhead(-1) },
				wantField: testdrive.FieldPreferredDate,
				wantCode:  testdrive.CodeTooSoon,
			},
			{
				name:   "three days ahead at 10:00",
				mutate: func(b *builder.TestDriveBuilder) { b.WithDaysAhead(3) },
			},
			{
				name:   "last day of the horizon",
				mutate: func(b *builder.TestDriveBuilder) { b.WithDaysAhead(30) },
			},
			{
				name:      "one day past the horizon",
				mutate:    func(b *builder.TestDriveBuilder) { b.WithDaysAhead(31) },
				wantField: testdrive.FieldPreferredDate,
				wantCode:  testdrive.CodeTooFar,
			},
			{
				name: "tomorrow 10:00 when now is 15:00",
				mutate: func(b *builder.TestDriveBuilder) {
					b.WithNow(time.Date(2025, 3, 10, 15, 0, 0, 0, b.Rules.Location)).WithDaysAhead(1)
				},
				wantField: testdrive.FieldPreferredDate,
				wantCode:  testdrive.CodeTooSoon,
			},
			{
				name:   "tomorrow later than 24 hours from now",
				mutate: func(b *builder.TestDriveBuilder) { b.WithDaysAhead(1).WithField(testdrive.FieldPreferredTime, "09:30") },
			},
			{
				name:      "tomorrow exactly 24 hours from now",
				mutate:    func(b *builder.TestDriveBuilder) { b.WithDaysAhead(1).WithField(testdrive.FieldPreferredTime, "09:00") },
				wantField: testdrive.FieldPreferredDate,
				wantCode:  testdrive.CodeTooSoon,
			},
			{
				name:      "slash separated date",
				mutate:    func(b *builder.TestDriveBuilder) { b.WithField(testdrive.FieldPreferredDate, "2025/03/13") },
				wantField: testdrive.FieldPreferredDate,
				wantCode:  testdrive.CodeInvalidFormat,
			},
			{
				name:      "impossible calendar date",
				mutate:    func(b *builder.TestDriveBuilder) { b.WithField(testdrive.FieldPreferredDate, "2025-02-30") },
				wantField: testdrive.FieldPreferredDate,
				wantCode:  testdrive.CodeInvalidFormat,
			},
			{
				name:      "time not HH:MM",
				mutate:    func(b *builder.TestDriveBuilder) { b.WithField(testdrive.FieldPreferredTime, "10am") },
				wantField: testdrive.FieldPreferredTime,
				wantCode:  testdrive.CodeInvalidFormat,
			},
		})
	})

	t.Run("contact fields", func(t *testing.T) {
		runValidationCases(t, []validationCase{
			{
				name:      "phone with too few digits",
				mutate:    func(b *builder.TestDriveBuilder) { b.WithField(testdrive.FieldPhone, "123-4567") },
				wantField: testdrive.FieldPhone,
				wantCode:  testdrive.CodeInvalidFormat,
			},
			{
				name:   "phone with formatting and exactly ten digits",
				mutate: func(b *builder.TestDriveBuilder) { b.WithField(testdrive.FieldPhone, "(03) 1234-5678") },
			},
			{
				name:      "email without domain",
				mutate:    func(b *builder.TestDriveBuilder) { b.WithField(testdrive.FieldEmail, "buyer@") },
				wantField: testdrive.FieldEmail,
				wantCode:  testdrive.CodeInvalidFormat,
			},
			{
				name:      "blank name",
				mutate:    func(b *builder.TestDriveBuilder) { b.WithField(testdrive.FieldName, "   ") },
				wantField: testdrive.FieldName,
				wantCode:  testdrive.CodeRequired,
			},
			{
				name:   "emergency phone may be omitted",
				mutate: func(b *builder.TestDriveBuilder) { b.WithField(testdrive.FieldEmergencyContactPhone, "") },
			},
			{
				name:      "emergency phone must have ten digits when supplied",
				mutate:    func(b *builder.TestDriveBuilder) { b.WithField(testdrive.FieldEmergencyContactPhone, "12345") },
				wantField: testdrive.FieldEmergencyContactPhone,
				wantCode:  testdrive.CodeInvalidFormat,
			},
		})
	})

	t.Run("choices and free text", func(t *testing.T) {
		runValidationCases(t, []validationCase{
			{
				name:      "unknown license type",
				mutate:    func(b *builder.TestDriveBuilder) { b.WithField(testdrive.FieldLicenseType, "learner") },
				wantField: testdrive.FieldLicenseType,
				wantCode:  testdrive.CodeInvalidChoice,
			},
			{
				name:      "unknown meeting location",
				mutate:    func(b *builder.TestDriveBuilder) { b.WithField(testdrive.FieldMeetingLocation, "airport") },
				wantField: testdrive.FieldMeetingLocation,
				wantCode:  testdrive.CodeInvalidChoice,
			},
			{
				name:      "custom meeting location requires a description",
				mutate:    func(b *builder.TestDriveBuilder) { b.WithField(testdrive.FieldMeetingLocation, "custom") },
				wantField: testdrive.FieldCustomLocation,
				wantCode:  testdrive.CodeRequired,
			},
			{
				name: "custom meeting location with a description",
				mutate: func(b *builder.TestDriveBuilder) {
					b.WithField(testdrive.FieldMeetingLocation, "custom").WithField(testdrive.FieldCustomLocation, "Shibuya station east exit")
				},
			},
			{
				name: "notes at the limit",
				mutate: func(b *builder.TestDriveBuilder) {
					b.WithField(testdrive.FieldAdditionalNotes, strings.Repeat("あ", 1000))
				},
			},
			{
				name: "notes over the limit",
				mutate: func(b *builder.TestDriveBuilder) {
					b.WithField(testdrive.FieldAdditionalNotes, strings.Repeat("a", 1001))
				},
				wantField: testdrive.FieldAdditionalNotes,
				wantCode:  testdrive.CodeTooLong,
			},
		})
	})
}

func TestValidateField(t *testing.T) {
	b := builder.NewTestDriveBuilder()
	vc := testdrive.ValidationContext{Rules: b.Rules, Now: b.Now, Form: b.Payload}

	t.Run("valid value returns nil", func(t *testing.T) {
		assert.Nil(t, testdrive.ValidateField(testdrive.FieldPhone, "09012345678", vc))
	})

	t.Run("date check uses the time from the form", func(t *testing.T) {
		tomorrow := b.Now.AddDate(0, 0, 1).Format(testdrive.DateLayout)
		early := vc
		early.Form.PreferredTime = "08:00"
		fe := testdrive.ValidateField(testdrive.FieldPreferredDate, tomorrow, early)
		require.NotNil(t, fe)
		assert.Equal(t, testdrive.CodeTooSoon, fe.Code)

		noTime := vc
		noTime.Form.PreferredTime = ""
		assert.Nil(t, testdrive.ValidateField(testdrive.FieldPreferredDate, tomorrow, noTime))
	})

	t.Run("custom location ignored unless custom is selected", func(t *testing.T) {
		assert.Nil(t, testdrive.ValidateField(testdrive.FieldCustomLocation, "", vc))
	})

	t.Run("time is required only once a date is chosen", func(t *testing.T) {
		noDate := vc
		noDate.Form.PreferredDate = "  "
		assert.Nil(t, testdrive.ValidateField(testdrive.FieldPreferredTime, "", noDate))

		fe := testdrive.ValidateField(testdrive.FieldPreferredTime, "", vc)
		require.NotNil(t, fe)
		assert.Equal(t, testdrive.CodeRequired, fe.Code)
	})

	t.Run("unknown field is accepted", func(t *testing.T) {
		assert.Nil(t, testdrive.ValidateField(testdrive.Field("nickname"), "", vc))
	})
}

func TestValidateProposal(t *testing.T) {
	b := builder.NewTestDriveBuilder()

	t.Run("valid proposal", func(t *testing.T) {
		assert.Empty(t, testdrive.ValidateProposal(b.Proposal(), b.Rules, b.Now))
	})

	t.Run("missing proposal", func(t *testing.T) {
		errs := testdrive.ValidateProposal(nil, b.Rules, b.Now)
		assert.Equal(t, testdrive.CodeRequired, errs[testdrive.FieldPreferredDate].Code)
	})

	t.Run("proposal outside the window", func(t *testing.T) {
		p := &testdrive.RescheduleProposal{Date: b.Now.AddDate(0, 0, 45).Format(testdrive.DateLayout), Time: "10:00"}
		errs := testdrive.ValidateProposal(p, b.Rules, b.Now)
		assert.Equal(t, testdrive.CodeTooFar, errs[testdrive.FieldPreferredDate].Code)
	})

	t.Run("proposal with malformed time", func(t *testing.T) {
		p := &testdrive.RescheduleProposal{Date: b.Now.AddDate(0, 0, 2).Format(testdrive.DateLayout), Time: "25:00"}
		errs := testdrive.ValidateProposal(p, b.Rules, b.Now)
		assert.Equal(t, testdrive.CodeInvalidFormat, errs[testdrive.FieldPreferredTime].Code)
		assert.NotContains(t, errs, testdrive.FieldPreferredDate)
	})
}

func TestPayload(t *testing.T) {
	t.Run("changing the date clears the time", func(t *testing.T) {
		p := builder.NewTestDriveBuilder().Payload
		updated := p.Set(testdrive.FieldPreferredDate, "2025-03-20")
		assert.Equal(t, "2025-03-20", updated.PreferredDate)
		assert.Empty(t, updated.PreferredTime)
	})

	t.Run("setting the same date keeps the time", func(t *testing.T) {
		p := builder.NewTestDriveBuilder().Payload
		updated := p.Set(testdrive.FieldPreferredDate, p.PreferredDate)
		assert.Equal(t, p.PreferredTime, updated.PreferredTime)
	})

	t.Run("normalizing drops a stale custom location", func(t *testing.T) {
		p := builder.NewTestDriveBuilder().Payload
		p.CustomLocation = "  Station  "
		assert.Empty(t, p.Normalized().CustomLocation)

		p.MeetingLocation = string(testdrive.MeetingCustom)
		assert.Equal(t, "Station", p.Normalized().CustomLocation)
	})
}

func runValidationCases(t *testing.T, cases []validationCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := builder.NewTestDriveBuilder().With(c.mutate)
			errs := testdrive.ValidateAll(b.Payload, b.Rules, b.Now)

			if c.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			require.Contains(t, errs, c.wantField)
			assert.Equal(t, c.wantCode, errs[c.wantField].Code)
		})
	}
}
