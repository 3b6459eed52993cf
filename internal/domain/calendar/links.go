package calendar

import (
	"errors"
	"net/url"
)

var ErrUnknownProvider = errors.New("unknown calendar provider")

type Provider string

const (
	ProviderGoogle  Provider = "google"
	ProviderOutlook Provider = "outlook"
	ProviderYahoo   Provider = "yahoo"
)

var Providers = []Provider{ProviderGoogle, ProviderOutlook, ProviderYahoo}

const (
	compactUTC = "20060102T150405Z"
	outlookUTC = "2006-01-02T15:04:05Z"
)

// ToProviderLink builds an add-to-calendar URL for the given provider.
func ToProviderLink(ev Event, provider Provider) (string, error) {
	if ev.Start.IsZero() || ev.End.IsZero() {
		return "", &IncompleteEventError{RequestID: ev.UID, Missing: []string{"start or end"}}
	}
	start, end := ev.Start.UTC(), ev.End.UTC()

	switch provider {
	case ProviderGoogle:
		q := url.Values{}
		q.Set("action", "TEMPLATE")
		q.Set("text", ev.Title)
		q.Set("dates", start.Format(compactUTC)+"/"+end.Format(compactUTC))
		q.Set("details", ev.Description)
		q.Set("location", ev.Location)
		return "https://calendar.google.com/calendar/render?" + q.Encode(), nil
	case ProviderOutlook:
		q := url.Values{}
		q.Set("path", "/calendar/action/compose")
		q.Set("rru", "addevent")
		q.Set("subject", ev.Title)
		q.Set("startdt", start.Format(outlookUTC))
		q.Set("enddt", end.Format(outlookUTC))
		q.Set("body", ev.Description)
		q.Set("location", ev.Location)
		return "https://outlook.live.com/calendar/0/deeplink/compose?" + q.Encode(), nil
	case ProviderYahoo:
		q := url.Values{}
		q.Set("v", "60")
		q.Set("title", ev.Title)
		q.Set("st", start.Format(compactUTC))
		q.Set("et", end.Format(compactUTC))
		q.Set("desc", ev.Description)
		q.Set("in_loc", ev.Location)
		return "https://calendar.yahoo.com/?" + q.Encode(), nil
	default:
		return "", ErrUnknownProvider
	}
}

// ProviderLinks builds links for every supported provider.
func ProviderLinks(ev Event) (map[Provider]string, error) {
	out := make(map[Provider]string, len(Providers))
	for _, p := range Providers {
		link, err := ToProviderLink(ev, p)
		if err != nil {
			return nil, err
		}
		out[p] = link
	}
	return out, nil
}

// FileName is the download name for an exported event.
func FileName(ev Event) string {
	return "test-drive-" + ev.Start.Format("20060102-1504") + ".ics"
}
