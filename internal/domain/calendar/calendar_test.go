//go:build unit

package calendar_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"testdrive-hub/internal/domain/calendar"
	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settings = calendar.Settings{
	ProdID:         "-//test//EN",
	UIDHost:        "testdrive-hub",
	TimeZone:       testdrive.DefaultRules().Location,
	SellerLocation: "Seller's address (shared after confirmation)",
	OfficeLocation: "TestDrive Hub Office Shinjuku",
	PublicLocation: "Public meeting point agreed with the seller",
}

func TestToEvent(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		req, err := b.BuildInStatus(testdrive.StatusConfirmed)
		require.NoError(t, err)

		ev, err := calendar.ToEvent(req, settings)
		require.NoError(t, err)

		assert.Equal(t, req.ID().String()+"@testdrive-hub", ev.UID)
		assert.Equal(t, "Test drive: 2019 Toyota Prius S", ev.Title)
		assert.Equal(t, settings.SellerLocation, ev.Location)
		assert.True(t, ev.Start.Equal(time.Date(2025, 3, 13, 10, 0, 0, 0, settings.TimeZone)))
		assert.Equal(t, time.Hour, ev.End.Sub(ev.Start))
		assert.Equal(t, req.Timestamp(), ev.Stamp)
		assert.Equal(t, "seller@example.com", ev.Organizer.Email)
		require.Len(t, ev.Attendees, 2)
		assert.Equal(t, "buyer@example.com", ev.Attendees[0].Email)
		assert.Contains(t, ev.Description, "See you then")
	})

	t.Run("rescheduled request uses the proposal", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		req, err := b.BuildInStatus(testdrive.StatusRescheduled)
		require.NoError(t, err)

		ev, err := calendar.ToEvent(req, settings)
		require.NoError(t, err)
		assert.True(t, ev.Start.Equal(time.Date(2025, 3, 14, 14, 30, 0, 0, settings.TimeZone)))
	})

	t.Run("custom location is used verbatim", func(t *testing.T) {
		b := builder.NewTestDriveBuilder().
			WithField(testdrive.FieldMeetingLocation, "custom").
			WithField(testdrive.FieldCustomLocation, "Shibuya station east exit")
		req, err := b.BuildInStatus(testdrive.StatusConfirmed)
		require.NoError(t, err)

		ev, err := calendar.ToEvent(req, settings)
		require.NoError(t, err)
		assert.Equal(t, "Shibuya station east exit", ev.Location)
	})

	t.Run("same request yields the same event", func(t *testing.T) {
		req, err := builder.NewTestDriveBuilder().BuildInStatus(testdrive.StatusConfirmed)
		require.NoError(t, err)

		first, err := calendar.ToEvent(req, settings)
		require.NoError(t, err)
		second, err := calendar.ToEvent(req, settings)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(first, second))
	})

	t.Run("requests without an agreed slot cannot be exported", func(t *testing.T) {
		for _, status := range []testdrive.Status{
			testdrive.StatusSending, testdrive.StatusSent, testdrive.StatusDeclined,
			testdrive.StatusCancelled, testdrive.StatusCompleted, testdrive.StatusFailed,
		} {
			req, err := builder.NewTestDriveBuilder().BuildInStatus(status)
			require.NoError(t, err)

			_, err = calendar.ToEvent(req, settings)
			require.ErrorIs(t, err, calendar.ErrIncompleteEvent, status)
		}
	})

	t.Run("missing seller email", func(t *testing.T) {
		b := builder.NewTestDriveBuilder()
		req, err := b.BuildInStatus(testdrive.StatusConfirmed)
		require.NoError(t, err)
		snap := req.Snapshot()
		snap.Vehicle.SellerEmail = ""

		_, err = calendar.ToEvent(testdrive.Reconstruct(snap), settings)
		var incomplete *calendar.IncompleteEventError
		require.ErrorAs(t, err, &incomplete)
		assert.Equal(t, []string{"seller email"}, incomplete.Missing)
	})
}

func TestFileFormatRoundTrip(t *testing.T) {
	for _, status := range []testdrive.Status{testdrive.StatusConfirmed, testdrive.StatusRescheduled} {
		t.Run(string(status), func(t *testing.T) {
			req, err := builder.NewTestDriveBuilder().BuildInStatus(status)
			require.NoError(t, err)
			ev, err := calendar.ToEvent(req, settings)
			require.NoError(t, err)

			data, err := calendar.ToFileFormat(ev, settings.ProdID)
			require.NoError(t, err)
			text := string(data)
			assert.Contains(t, text, "BEGIN:VCALENDAR")
			assert.Contains(t, text, "METHOD:REQUEST")
			assert.Contains(t, text, "UID:"+ev.UID)

			parsed, err := calendar.ParseFileFormat(data)
			require.NoError(t, err)

			assert.Equal(t, ev.UID, parsed.UID)
			assert.True(t, ev.Start.Equal(parsed.Start), "start %s != %s", ev.Start, parsed.Start)
			assert.True(t, ev.End.Equal(parsed.End))
			assert.Equal(t, ev.Location, parsed.Location)
			assert.Equal(t, ev.Title, parsed.Title)

			emails := func(ps []calendar.Participant) []string {
				out := make([]string, 0, len(ps))
				for _, p := range ps {
					out = append(out, p.Email)
				}
				return out
			}
			assert.Empty(t, cmp.Diff(emails(ev.Attendees), emails(parsed.Attendees), cmpopts.SortSlices(func(a, b string) bool { return a < b })))
		})
	}

	t.Run("text with escapable characters survives unchanged", func(t *testing.T) {
		req, err := builder.NewTestDriveBuilder().
			WithField(testdrive.FieldMeetingLocation, string(testdrive.MeetingCustom)).
			WithField(testdrive.FieldCustomLocation, `C:\new road, 2F; gate \N`).
			WithField(testdrive.FieldAdditionalNotes, "bring licence; spare key, please\nback\\slash").
			BuildInStatus(testdrive.StatusConfirmed)
		require.NoError(t, err)
		ev, err := calendar.ToEvent(req, settings)
		require.NoError(t, err)
		require.Equal(t, `C:\new road, 2F; gate \N`, ev.Location)

		data, err := calendar.ToFileFormat(ev, settings.ProdID)
		require.NoError(t, err)
		parsed, err := calendar.ParseFileFormat(data)
		require.NoError(t, err)

		assert.Equal(t, ev.Location, parsed.Location)
		assert.Equal(t, ev.Description, parsed.Description)
		assert.Equal(t, ev.Title, parsed.Title)
	})

	t.Run("document without events", func(t *testing.T) {
		doc := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//x//EN\r\nEND:VCALENDAR\r\n"
		_, err := calendar.ParseFileFormat([]byte(doc))
		require.ErrorIs(t, err, calendar.ErrNoEvent)
	})
}

func TestToProviderLink(t *testing.T) {
	req, err := builder.NewTestDriveBuilder().BuildInStatus(testdrive.StatusConfirmed)
	require.NoError(t, err)
	ev, err := calendar.ToEvent(req, settings)
	require.NoError(t, err)

	cases := []struct {
		provider calendar.Provider
		host     string
		check    func(t *testing.T, q url.Values)
	}{
		{
			provider: calendar.ProviderGoogle,
			host:     "calendar.google.com",
			check: func(t *testing.T, q url.Values) {
				assert.Equal(t, "TEMPLATE", q.Get("action"))
				assert.Equal(t, "20250313T010000Z/20250313T020000Z", q.Get("dates"))
				assert.Equal(t, ev.Title, q.Get("text"))
			},
		},
		{
			provider: calendar.ProviderOutlook,
			host:     "outlook.live.com",
			check: func(t *testing.T, q url.Values) {
				assert.Equal(t, "2025-03-13T01:00:00Z", q.Get("startdt"))
				assert.Equal(t, "2025-03-13T02:00:00Z", q.Get("enddt"))
				assert.Equal(t, ev.Location, q.Get("location"))
			},
		},
		{
			provider: calendar.ProviderYahoo,
			host:     "calendar.yahoo.com",
			check: func(t *testing.T, q url.Values) {
				assert.Equal(t, "60", q.Get("v"))
				assert.Equal(t, "20250313T010000Z", q.Get("st"))
				assert.Equal(t, "20250313T020000Z", q.Get("et"))
			},
		},
	}
	for _, c := range cases {
		t.Run(string(c.provider), func(t *testing.T) {
			link, err := calendar.ToProviderLink(ev, c.provider)
			require.NoError(t, err)

			u, err := url.Parse(link)
			require.NoError(t, err)
			assert.Equal(t, "https", u.Scheme)
			assert.Equal(t, c.host, u.Host)
			c.check(t, u.Query())
		})
	}

	t.Run("unknown provider", func(t *testing.T) {
		_, err := calendar.ToProviderLink(ev, calendar.Provider("icloud"))
		require.ErrorIs(t, err, calendar.ErrUnknownProvider)
	})

	t.Run("all providers", func(t *testing.T) {
		links, err := calendar.ProviderLinks(ev)
		require.NoError(t, err)
		assert.Len(t, links, 3)
		assert.True(t, strings.HasPrefix(links[calendar.ProviderGoogle], "https://calendar.google.com/"))
	})

	t.Run("file name", func(t *testing.T) {
		assert.Equal(t, "test-drive-20250313-1000.ics", calendar.FileName(ev))
	})
}
