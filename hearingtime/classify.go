package hearingtime

import (
	"time"

	"hearing-server/models/hearing"
)

const DEFAULT_ACTIVE_WINDOW = 30 * time.Minute
const DEFAULT_UPCOMING_LIMIT = 5

// Engine carries the configuration shared by the aggregate operations.
// The zero value uses IST, a 30 minute window and a limit of 5 upcoming hearings.
// A Zone is unset when it has neither a name nor an offset, so an unnamed
// CivilZone{Offset: 0} also means IST. Pass UTC() to classify in UTC.
type Engine struct {
	Zone          CivilZone
	ActiveWindow  time.Duration
	UpcomingLimit int
}

// NewEngine returns an engine with the defaults applied.
func NewEngine(zone CivilZone, window time.Duration, upcomingLimit int) *Engine {
	e := &Engine{Zone: zone, ActiveWindow: window, UpcomingLimit: upcomingLimit}
	e.normalize()
	return e
}

func (e *Engine) normalize() {
	if e.Zone.IsZero() {
		e.Zone = IST()
	}
	if e.ActiveWindow <= 0 {
		e.ActiveWindow = DEFAULT_ACTIVE_WINDOW
	}
	if e.UpcomingLimit <= 0 {
		e.UpcomingLimit = DEFAULT_UPCOMING_LIMIT
	}
}

func (e *Engine) settings() Engine {
	c := *e
	c.normalize()
	return c
}

// IsSameCalendarDay is true iff year, month and day all match.
func IsSameCalendarDay(a, b CalendarDate) bool {
	return a.Year == b.Year && a.Month == b.Month && a.Day == b.Day
}

// IsWithinActiveWindow reports whether nowMillis lies within window of the
// hearing instant. Both ends of the window are inclusive. A non-positive
// window falls back to DEFAULT_ACTIVE_WINDOW.
func IsWithinActiveWindow(ts ParsedTimestamp, nowMillis int64, window time.Duration, zone CivilZone) bool {
	if window <= 0 {
		window = DEFAULT_ACTIVE_WINDOW
	}
	hearingMillis := zone.Instant(ts).UnixMilli()
	diff := nowMillis - hearingMillis
	if diff < 0 {
		diff = -diff
	}
	return diff <= window.Milliseconds()
}

// TodayClassification is the "live now" widget payload.
type TodayClassification struct {
	Current       *hearing.HearingRecord  `json:"current"`
	SameDayOthers []hearing.HearingRecord `json:"same_day_others"`
}

// ClassifyHearingsForToday splits today's hearings into the one in session and
// the rest. The first active record in input order wins; later active records
// go to SameDayOthers. Records that fail to parse are skipped.
func (e *Engine) ClassifyHearingsForToday(records []hearing.HearingRecord, now time.Time) TodayClassification {
	cfg := e.settings()
	today := cfg.Zone.Today(now)
	nowMillis := now.UnixMilli()

	out := TodayClassification{SameDayOthers: []hearing.HearingRecord{}}
	for i := range records {
		ts, err := ParseLocalHearingTimestamp(records[i].HearingTimestamp)
		if err != nil {
			continue
		}
		if !IsSameCalendarDay(ts.Date(), today) {
			continue
		}
		if out.Current == nil && IsWithinActiveWindow(ts, nowMillis, cfg.ActiveWindow, cfg.Zone) {
			current := records[i]
			out.Current = &current
			continue
		}
		out.SameDayOthers = append(out.SameDayOthers, records[i])
	}
	return out
}

// NextInLine returns the earliest record in others scheduled after now, or nil.
func (e *Engine) NextInLine(others []hearing.HearingRecord, now time.Time) *hearing.HearingRecord {
	cfg := e.settings()

	var next *hearing.HearingRecord
	var nextAt time.Time
	for i := range others {
		ts, err := ParseLocalHearingTimestamp(others[i].HearingTimestamp)
		if err != nil {
			continue
		}
		at := cfg.Zone.Instant(ts)
		if !at.After(now) {
			continue
		}
		if next == nil || at.Before(nextAt) {
			rec := others[i]
			next, nextAt = &rec, at
		}
	}
	return next
}
