package util

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"hearing-server/hearingtime"
)

const ICS_PRODUCT_ID = "-//hearing-server//Hearing Calendar//EN"

// ICS_UID_DOMAIN is appended to case ids to form event UIDs.
const ICS_UID_DOMAIN = "@hearing-server"

// ICSOptions controls how hearings become events.
type ICSOptions struct {
	Zone         hearingtime.CivilZone
	Duration     time.Duration
	Stamp        time.Time
	CalendarName string
}

// ExportHearingsICS writes one VEVENT per bucketed hearing, in day order.
// Instants are written in UTC.
func ExportHearingsICS(w io.Writer, buckets hearingtime.CalendarBuckets, o ICSOptions) error {
	if o.Duration <= 0 {
		o.Duration = 2 * hearingtime.DEFAULT_ACTIVE_WINDOW
	}
	if o.Stamp.IsZero() {
		o.Stamp = time.Now()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ICS_PRODUCT_ID)
	if o.CalendarName != "" {
		cal.SetXWRCalName(o.CalendarName)
	}

	for _, day := range buckets.Days() {
		for _, rec := range buckets[day] {
			ts, err := hearingtime.ParseLocalHearingTimestamp(rec.HearingTimestamp)
			if err != nil {
				continue
			}
			start := o.Zone.Instant(ts)

			event := cal.AddEvent(rec.ID + ICS_UID_DOMAIN)
			event.SetDtStampTime(o.Stamp.UTC())
			event.SetStartAt(start)
			event.SetEndAt(start.Add(o.Duration))
			event.SetSummary(summaryFor(rec.CaseNumber, rec.Title))
			event.SetDescription(fmt.Sprintf("Status: %s\nLocal time: %s %s", rec.Status.Display(), ts.Date().Key(), ts.Clock()))
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}

func summaryFor(caseNumber, title string) string {
	switch {
	case caseNumber == "":
		return title
	case title == "":
		return caseNumber
	default:
		return caseNumber + " " + title
	}
}
