package calendar

import (
	"bytes"
	"errors"
	"strings"

	ics "github.com/arran4/golang-ical"
)

var ErrNoEvent = errors.New("calendar contains no event")

const defaultProdID = "-//testdrive-hub//test drive requests//EN"

// ToFileFormat renders the event as an iCalendar REQUEST.
func ToFileFormat(ev Event, prodID string) ([]byte, error) {
	if ev.UID == "" || ev.Start.IsZero() {
		return nil, &IncompleteEventError{RequestID: ev.UID, Missing: []string{"uid or start"}}
	}
	if prodID == "" {
		prodID = defaultProdID
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId(prodID)

	e := cal.AddEvent(ev.UID)
	e.SetDtStampTime(ev.Stamp.UTC())
	e.SetCreatedTime(ev.Stamp.UTC())
	e.SetStartAt(ev.Start.UTC())
	e.SetEndAt(ev.End.UTC())
	e.SetSummary(ev.Title)
	e.SetDescription(ev.Description)
	if ev.Location != "" {
		e.SetLocation(ev.Location)
	}
	e.SetStatus(ics.ObjectStatusConfirmed)
	if ev.Organizer.Email != "" {
		e.SetOrganizer("mailto:"+ev.Organizer.Email, ics.WithCN(ev.Organizer.Name))
	}
	for _, a := range ev.Attendees {
		e.AddAttendee("mailto:"+a.Email,
			ics.WithCN(a.Name),
			ics.ParticipationRoleReqParticipant,
			ics.ParticipationStatusNeedsAction,
			ics.WithRSVP(true),
		)
	}

	return []byte(cal.Serialize()), nil
}

// ParseFileFormat reads the first event of an iCalendar document.
func ParseFileFormat(data []byte) (Event, error) {
	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return Event{}, err
	}
	events := cal.Events()
	if len(events) == 0 {
		return Event{}, ErrNoEvent
	}
	e := events[0]

	start, err := e.GetStartAt()
	if err != nil {
		return Event{}, err
	}
	end, err := e.GetEndAt()
	if err != nil {
		return Event{}, err
	}

	ev := Event{
		UID:         e.Id(),
		Title:       propertyText(e, ics.ComponentPropertySummary),
		Description: propertyText(e, ics.ComponentPropertyDescription),
		Location:    propertyText(e, ics.ComponentPropertyLocation),
		Start:       start,
		End:         end,
	}
	if stamp, err := e.GetDtStampTime(); err == nil {
		ev.Stamp = stamp
	}
	if p := e.GetProperty(ics.ComponentPropertyOrganizer); p != nil {
		ev.Organizer = Participant{Email: trimMailto(p.Value), Name: paramValue(p.ICalParameters, "CN")}
	}
	for _, a := range e.Attendees() {
		ev.Attendees = append(ev.Attendees, Participant{
			Email: a.Email(),
			Name:  paramValue(a.ICalParameters, "CN"),
		})
	}
	return ev, nil
}

// propertyText returns a TEXT value; the parser has already unescaped it.
func propertyText(e *ics.VEvent, prop ics.ComponentProperty) string {
	p := e.GetProperty(prop)
	if p == nil {
		return ""
	}
	return p.Value
}

func paramValue(params map[string][]string, key string) string {
	if v := params[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func trimMailto(v string) string {
	if len(v) >= 7 && strings.EqualFold(v[:7], "mailto:") {
		return v[7:]
	}
	return v
}
