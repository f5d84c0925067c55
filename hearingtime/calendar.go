package hearingtime

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"hearing-server/models/hearing"
)

// GRID_WEEKS is the fixed number of rows in a month grid.
const GRID_WEEKS = 6

// CalendarBuckets maps "YYYY-MM-DD" to the hearings on that day, in input order.
type CalendarBuckets map[string][]hearing.HearingRecord

// Days returns the bucket keys in ascending order.
func (b CalendarBuckets) Days() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Total is the number of hearings across all buckets.
func (b CalendarBuckets) Total() int {
	n := 0
	for _, recs := range b {
		n += len(recs)
	}
	return n
}

// MonthBounds returns the first and last calendar dates of a month.
func MonthBounds(year int, month time.Month) (CalendarDate, CalendarDate) {
	first := CalendarDate{Year: year, Month: int(month), Day: 1}
	last := CalendarDate{Year: year, Month: int(month), Day: daysIn(year, int(month))}
	return first, last
}

// BucketHearingsByMonth keeps the records whose parsed date lies within
// [monthStart, monthEnd] (whole days, inclusive) and groups them by day.
func (e *Engine) BucketHearingsByMonth(records []hearing.HearingRecord, monthStart, monthEnd CalendarDate) CalendarBuckets {
	buckets := make(CalendarBuckets)
	lo, hi := monthStart.ordinal(), monthEnd.ordinal()

	for _, rec := range records {
		ts, err := ParseLocalHearingTimestamp(rec.HearingTimestamp)
		if err != nil {
			continue
		}
		d := ts.Date()
		if o := d.ordinal(); o < lo || o > hi {
			continue
		}
		buckets[d.Key()] = append(buckets[d.Key()], rec)
	}
	return buckets
}

// GridDay is one cell of the month grid.
type GridDay struct {
	Date     CalendarDate            `json:"date"`
	Key      string                  `json:"key"`
	InMonth  bool                    `json:"in_month"`
	Hearings []hearing.HearingRecord `json:"hearings"`
}

// GridWeek is one row of seven cells.
type GridWeek []GridDay

// ParseWeekday accepts full English day names in any case ("sunday", "Monday").
func ParseWeekday(raw string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", raw)
}

// StartOfWeek returns the latest date on or before d that falls on weekStart.
func StartOfWeek(d CalendarDate, weekStart time.Weekday) CalendarDate {
	back := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDays(-back)
}

// MonthGrid lays a month out as GRID_WEEKS rows of seven days starting at the
// week that contains the first of the month. Days outside the month are kept
// with InMonth=false and still carry their hearings.
func (e *Engine) MonthGrid(records []hearing.HearingRecord, year int, month time.Month, weekStart time.Weekday) []GridWeek {
	first, _ := MonthBounds(year, month)
	gridStart := StartOfWeek(first, weekStart)
	gridEnd := gridStart.AddDays(GRID_WEEKS*7 - 1)

	buckets := e.BucketHearingsByMonth(records, gridStart, gridEnd)

	weeks := make([]GridWeek, 0, GRID_WEEKS)
	day := gridStart
	for w := 0; w < GRID_WEEKS; w++ {
		week := make(GridWeek, 0, 7)
		for i := 0; i < 7; i++ {
			recs := buckets[day.Key()]
			if recs == nil {
				recs = []hearing.HearingRecord{}
			}
			week = append(week, GridDay{
				Date:     day,
				Key:      day.Key(),
				InMonth:  day.Year == year && day.Month == int(month),
				Hearings: recs,
			})
			day = day.AddDays(1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
