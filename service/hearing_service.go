package services

import (
	"fmt"
	"io"
	"sort"
	"time"

	"hearing-server/hearingtime"
	"hearing-server/models/hearing"
	"hearing-server/util"
)

// HearingReader is the read side of the snapshot store.
type HearingReader interface {
	GetSnapshot() (*hearing.Snapshot, error)
	GetCase(id string) (*hearing.HearingRecord, error)
}

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// TodayView is the "live now" payload.
type TodayView struct {
	Current       *hearing.HearingRecord  `json:"current"`
	SameDayOthers []hearing.HearingRecord `json:"same_day_others"`
	NextInLine    *hearing.HearingRecord  `json:"next_in_line"`
	Today         string                  `json:"today"`
	Zone          string                  `json:"zone"`
	SnapshotID    string                  `json:"snapshot_id"`
	FetchedAt     time.Time               `json:"fetched_at"`
}

// CalendarView is the month page: grid, per-day buckets and the statistics panel.
type CalendarView struct {
	Month     string                      `json:"month"`
	WeekStart string                      `json:"week_start"`
	Weeks     []hearingtime.GridWeek      `json:"weeks"`
	Days      hearingtime.CalendarBuckets `json:"days"`
	Stats     hearingtime.MonthStats      `json:"stats"`
}

// StatsView is the statistics panel for one month.
type StatsView struct {
	Month string `json:"month"`
	hearingtime.MonthStats
}

// HearingService answers the time-based views from the latest snapshot.
// Every call recomputes from the snapshot and the service clock.
type HearingService struct {
	reader HearingReader
	engine *hearingtime.Engine
	now    func() time.Time
}

// NewHearingService constructs a HearingService. A nil now uses time.Now.
func NewHearingService(reader HearingReader, engine *hearingtime.Engine, now func() time.Time) *HearingService {
	if now == nil {
		now = time.Now
	}
	return &HearingService{reader: reader, engine: engine, now: now}
}

// Zone returns the civil zone of the engine.
func (hs *HearingService) Zone() hearingtime.CivilZone {
	return hs.engine.Zone
}

// CurrentMonth is the month containing today in the civil zone.
func (hs *HearingService) CurrentMonth() Month {
	today := hs.engine.Zone.Today(hs.now())
	return Month{Year: today.Year, Month: time.Month(today.Month)}
}

// Today classifies today's hearings and picks the next one in line.
func (hs *HearingService) Today() (*TodayView, error) {
	s, err := hs.reader.GetSnapshot()
	if err != nil {
		return nil, err
	}
	now := hs.now()
	c := hs.engine.ClassifyHearingsForToday(s.Records, now)
	return &TodayView{
		Current:       c.Current,
		SameDayOthers: c.SameDayOthers,
		NextInLine:    hs.engine.NextInLine(c.SameDayOthers, now),
		Today:         hs.engine.Zone.Today(now).Key(),
		Zone:          hs.engine.Zone.String(),
		SnapshotID:    s.ID,
		FetchedAt:     s.FetchedAt,
	}, nil
}

// Calendar builds the month grid view.
func (hs *HearingService) Calendar(m Month, weekStart time.Weekday) (*CalendarView, error) {
	s, err := hs.reader.GetSnapshot()
	if err != nil {
		return nil, err
	}
	first, last := hearingtime.MonthBounds(m.Year, m.Month)
	shown := displayRecords(s.Records)
	return &CalendarView{
		Month:     m.String(),
		WeekStart: weekStart.String(),
		Weeks:     hs.engine.MonthGrid(shown, m.Year, m.Month, weekStart),
		Days:      hs.engine.BucketHearingsByMonth(shown, first, last),
		Stats:     hs.engine.MonthStats(s.Records, m.Year, m.Month, hs.now()),
	}, nil
}

// displayRecords copies recs with the calendar status labels applied.
func displayRecords(recs []hearing.HearingRecord) []hearing.HearingRecord {
	out := make([]hearing.HearingRecord, len(recs))
	for i, r := range recs {
		r.Status = r.Status.Display()
		out[i] = r
	}
	return out
}

// Upcoming returns the upcoming panel.
func (hs *HearingService) Upcoming() ([]hearing.HearingRecord, error) {
	s, err := hs.reader.GetSnapshot()
	if err != nil {
		return nil, err
	}
	return hs.engine.RankUpcoming(s.Records, hs.now()), nil
}

// Completed returns the completed panel, latest first.
func (hs *HearingService) Completed() ([]hearing.HearingRecord, error) {
	s, err := hs.reader.GetSnapshot()
	if err != nil {
		return nil, err
	}
	return hs.engine.RankCompleted(s.Records, hs.now()), nil
}

// Stats returns the statistics panel for a month.
func (hs *HearingService) Stats(m Month) (*StatsView, error) {
	s, err := hs.reader.GetSnapshot()
	if err != nil {
		return nil, err
	}
	return &StatsView{Month: m.String(), MonthStats: hs.engine.MonthStats(s.Records, m.Year, m.Month, hs.now())}, nil
}

// Cases is the plain listing, unfiltered and sorted by case number.
func (hs *HearingService) Cases() ([]hearing.HearingRecord, error) {
	s, err := hs.reader.GetSnapshot()
	if err != nil {
		return nil, err
	}
	out := make([]hearing.HearingRecord, len(s.Records))
	copy(out, s.Records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CaseNumber < out[j].CaseNumber })
	return out, nil
}

// Case returns one case by id. Unknown ids wrap the store's not-found error.
func (hs *HearingService) Case(id string) (*hearing.HearingRecord, error) {
	rec, err := hs.reader.GetCase(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load case %s: %w", id, err)
	}
	return rec, nil
}

// Quarantine returns the rows ingestion flagged in the latest snapshot.
func (hs *HearingService) Quarantine() ([]hearing.QuarantinedRow, error) {
	s, err := hs.reader.GetSnapshot()
	if err != nil {
		return nil, err
	}
	if s.Quarantined == nil {
		return []hearing.QuarantinedRow{}, nil
	}
	return s.Quarantined, nil
}

// WriteICS writes the month's hearings as an iCalendar document.
func (hs *HearingService) WriteICS(w io.Writer, m Month) error {
	s, err := hs.reader.GetSnapshot()
	if err != nil {
		return err
	}
	first, last := hearingtime.MonthBounds(m.Year, m.Month)
	buckets := hs.engine.BucketHearingsByMonth(s.Records, first, last)
	return util.ExportHearingsICS(w, buckets, util.ICSOptions{
		Zone:         hs.engine.Zone,
		Duration:     hs.engine.ActiveWindow * 2,
		Stamp:        s.FetchedAt,
		CalendarName: "Hearings " + m.String(),
	})
}

// WriteChart renders the month's hearings per day as an HTML bar chart.
func (hs *HearingService) WriteChart(w io.Writer, m Month) error {
	s, err := hs.reader.GetSnapshot()
	if err != nil {
		return err
	}
	first, last := hearingtime.MonthBounds(m.Year, m.Month)
	buckets := hs.engine.BucketHearingsByMonth(s.Records, first, last)

	days := make([]string, 0, last.Day)
	counts := make([]int, 0, last.Day)
	for d := first; !last.Before(d); d = d.AddDays(1) {
		days = append(days, d.Key())
		counts = append(counts, len(buckets[d.Key()]))
	}
	return util.RenderHearingChart(w, "Hearings "+m.String(), hs.engine.Zone.String(), days, counts)
}
