package hearingtime

import (
	"sort"
	"time"

	"hearing-server/models/hearing"
)

type parsedRecord struct {
	rec hearing.HearingRecord
	ts  ParsedTimestamp
}

func (e *Engine) parseAll(records []hearing.HearingRecord) []parsedRecord {
	out := make([]parsedRecord, 0, len(records))
	for _, rec := range records {
		ts, err := ParseLocalHearingTimestamp(rec.HearingTimestamp)
		if err != nil {
			continue
		}
		out = append(out, parsedRecord{rec: rec, ts: ts})
	}
	return out
}

func unwrap(parsed []parsedRecord) []hearing.HearingRecord {
	out := make([]hearing.HearingRecord, 0, len(parsed))
	for _, p := range parsed {
		out = append(out, p.rec)
	}
	return out
}

// RankUpcoming returns hearings at or after now, by calendar date and then by
// "HH:mm" clock string, capped at the engine's upcoming limit. The clock
// comparison relies on the zero-padded 24h format.
func (e *Engine) RankUpcoming(records []hearing.HearingRecord, now time.Time) []hearing.HearingRecord {
	cfg := e.settings()

	upcoming := make([]parsedRecord, 0)
	for _, p := range e.parseAll(records) {
		if cfg.Zone.Instant(p.ts).Before(now) {
			continue
		}
		upcoming = append(upcoming, p)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		di, dj := upcoming[i].ts.Date().ordinal(), upcoming[j].ts.Date().ordinal()
		if di != dj {
			return di < dj
		}
		return upcoming[i].ts.Clock() < upcoming[j].ts.Clock()
	})

	if len(upcoming) > cfg.UpcomingLimit {
		upcoming = upcoming[:cfg.UpcomingLimit]
	}
	return unwrap(upcoming)
}

// RankCompleted returns hearings that are marked completed or whose instant is
// strictly before now, latest first.
func (e *Engine) RankCompleted(records []hearing.HearingRecord, now time.Time) []hearing.HearingRecord {
	cfg := e.settings()

	done := make([]parsedRecord, 0)
	for _, p := range e.parseAll(records) {
		if p.rec.Status.IsCompleted() || cfg.Zone.Instant(p.ts).Before(now) {
			done = append(done, p)
		}
	}

	sort.SliceStable(done, func(i, j int) bool {
		return done[i].ts.String() > done[j].ts.String()
	})
	return unwrap(done)
}

// MonthStats is the statistics panel of the calendar page.
type MonthStats struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
}

// MonthStats counts the month's hearings, how many show in the upcoming panel
// and how many are marked completed.
func (e *Engine) MonthStats(records []hearing.HearingRecord, year int, month time.Month, now time.Time) MonthStats {
	first, last := MonthBounds(year, month)
	buckets := e.BucketHearingsByMonth(records, first, last)

	inMonth := make([]hearing.HearingRecord, 0, buckets.Total())
	for _, day := range buckets.Days() {
		inMonth = append(inMonth, buckets[day]...)
	}

	stats := MonthStats{Total: len(inMonth)}
	stats.Upcoming = len(e.RankUpcoming(inMonth, now))
	for _, rec := range inMonth {
		if rec.Status.IsCompleted() {
			stats.Completed++
		}
	}
	return stats
}
