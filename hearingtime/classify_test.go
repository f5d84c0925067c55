package hearingtime_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearing-server/hearingtime"
	"hearing-server/models/hearing"
)

func record(id, ts string) hearing.HearingRecord {
	return hearing.HearingRecord{
		ID:               id,
		CaseNumber:       "CN-" + id,
		Title:            "Case " + id,
		Status:           hearing.StatusScheduled,
		HearingTimestamp: ts,
	}
}

// 2024-06-10 14:30 IST.
var scenarioNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func TestIsSameCalendarDay(t *testing.T) {
	a := hearingtime.CalendarDate{Year: 2024, Month: 6, Day: 10}
	assert.True(t, hearingtime.IsSameCalendarDay(a, hearingtime.CalendarDate{Year: 2024, Month: 6, Day: 10}))
	assert.False(t, hearingtime.IsSameCalendarDay(a, hearingtime.CalendarDate{Year: 2024, Month: 6, Day: 11}))
	assert.False(t, hearingtime.IsSameCalendarDay(a, hearingtime.CalendarDate{Year: 2024, Month: 7, Day: 10}))
	assert.False(t, hearingtime.IsSameCalendarDay(a, hearingtime.CalendarDate{Year: 2025, Month: 6, Day: 10}))
}

func TestIsWithinActiveWindow_Boundaries(t *testing.T) {
	zone := hearingtime.IST()
	ts, err := hearingtime.ParseLocalHearingTimestamp("2024-06-10T14:30:00")
	require.NoError(t, err)

	hearingMillis := zone.Instant(ts).UnixMilli()
	window := 30 * time.Minute
	edge := window.Milliseconds()

	tests := []struct {
		name string
		now  int64
		want bool
	}{
		{"exact", hearingMillis, true},
		{"plus boundary", hearingMillis + edge, true},
		{"minus boundary", hearingMillis - edge, true},
		{"plus boundary + 1ms", hearingMillis + edge + 1, false},
		{"minus boundary - 1ms", hearingMillis - edge - 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hearingtime.IsWithinActiveWindow(ts, tt.now, window, zone))
		})
	}
}

func TestIsWithinActiveWindow_DefaultWindow(t *testing.T) {
	zone := hearingtime.IST()
	ts := hearingtime.ParsedTimestamp{Year: 2024, Month: 6, Day: 10, Hour: 14, Minute: 30}
	at := zone.Instant(ts).UnixMilli()

	assert.True(t, hearingtime.IsWithinActiveWindow(ts, at+(30*time.Minute).Milliseconds(), 0, zone))
	assert.False(t, hearingtime.IsWithinActiveWindow(ts, at+(30*time.Minute).Milliseconds()+1, 0, zone))
}

func TestClassifyHearingsForToday_Scenario(t *testing.T) {
	engine := hearingtime.NewEngine(hearingtime.IST(), 30*time.Minute, 5)

	live := record("1", "2024-06-10T14:45:00")
	later := record("2", "2024-06-10T16:00:00")
	tomorrow := record("3", "2024-06-11T09:00:00")

	got := engine.ClassifyHearingsForToday([]hearing.HearingRecord{live, later, tomorrow}, scenarioNow)

	require.NotNil(t, got.Current)
	assert.Equal(t, "1", got.Current.ID)
	assert.Equal(t, []hearing.HearingRecord{later}, got.SameDayOthers)
}

func TestClassifyHearingsForToday_FirstActiveWins(t *testing.T) {
	engine := &hearingtime.Engine{}

	a := record("a", "2024-06-10T14:20:00")
	b := record("b", "2024-06-10T14:40:00")
	c := record("c", "2024-06-10T10:00:00")

	got := engine.ClassifyHearingsForToday([]hearing.HearingRecord{c, a, b}, scenarioNow)

	require.NotNil(t, got.Current)
	assert.Equal(t, "a", got.Current.ID)
	assert.Equal(t, []hearing.HearingRecord{c, b}, got.SameDayOthers)
}

func TestClassifyHearingsForToday_NoneToday(t *testing.T) {
	engine := &hearingtime.Engine{}
	got := engine.ClassifyHearingsForToday([]hearing.HearingRecord{
		record("1", "2024-06-09T14:30:00"),
		record("2", ""),
	}, scenarioNow)

	assert.Nil(t, got.Current)
	assert.Empty(t, got.SameDayOthers)
	assert.NotNil(t, got.SameDayOthers)
}

func TestClassifyHearingsForToday_NilInput(t *testing.T) {
	engine := &hearingtime.Engine{}
	got := engine.ClassifyHearingsForToday(nil, scenarioNow)
	assert.Nil(t, got.Current)
	assert.Empty(t, got.SameDayOthers)
}

func TestClassifyHearingsForToday_ExactlyOnce(t *testing.T) {
	engine := &hearingtime.Engine{}

	var records []hearing.HearingRecord
	for i := 0; i < 24; i++ {
		for _, m := range []int{0, 15, 45} {
			records = append(records, record(fmt.Sprintf("%02d%02d", i, m), fmt.Sprintf("2024-06-10T%02d:%02d:00", i, m)))
		}
	}

	got := engine.ClassifyHearingsForToday(records, scenarioNow)

	seen := map[string]int{}
	if got.Current != nil {
		seen[got.Current.ID]++
	}
	for _, r := range got.SameDayOthers {
		seen[r.ID]++
	}
	assert.Len(t, seen, len(records))
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
	require.NotNil(t, got.Current)
	assert.Equal(t, "1400", got.Current.ID)
}

func TestClassifyHearingsForToday_Deterministic(t *testing.T) {
	engine := &hearingtime.Engine{}
	records := []hearing.HearingRecord{
		record("1", "2024-06-10T14:45:00"),
		record("2", "2024-06-10T16:00:00"),
		record("3", "2024-06-10T14:50:00"),
		record("4", "garbage"),
	}
	input := append([]hearing.HearingRecord(nil), records...)

	first := engine.ClassifyHearingsForToday(records, scenarioNow)
	second := engine.ClassifyHearingsForToday(records, scenarioNow)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("classification drifted between calls (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(input, records); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestClassifyHearingsForToday_MalformedIsolation(t *testing.T) {
	engine := &hearingtime.Engine{}
	valid := []hearing.HearingRecord{
		record("1", "2024-06-10T14:45:00"),
		record("2", "2024-06-10T16:00:00"),
		record("3", "2024-06-10T08:00:00"),
	}
	bad := record("bad", "not-a-date")

	withBad := append([]hearing.HearingRecord{valid[0], bad}, valid[1:]...)

	clean := engine.ClassifyHearingsForToday(valid, scenarioNow)
	mixed := engine.ClassifyHearingsForToday(withBad, scenarioNow)

	if diff := cmp.Diff(clean, mixed); diff != "" {
		t.Errorf("bad record changed classification (-clean +mixed):\n%s", diff)
	}
	if mixed.Current != nil {
		assert.NotEqual(t, "bad", mixed.Current.ID)
	}
	for _, r := range mixed.SameDayOthers {
		assert.NotEqual(t, "bad", r.ID)
	}
}

func TestClassifyHearingsForToday_CustomZone(t *testing.T) {
	// UTC-04:00: now is 05:00 local on 2024-06-10.
	engine := hearingtime.NewEngine(hearingtime.CivilZone{Name: "EDT", Offset: -4 * time.Hour}, 30*time.Minute, 5)

	got := engine.ClassifyHearingsForToday([]hearing.HearingRecord{
		record("1", "2024-06-10T05:10:00"),
		record("2", "2024-06-10T14:45:00"),
	}, scenarioNow)

	require.NotNil(t, got.Current)
	assert.Equal(t, "1", got.Current.ID)
	assert.Len(t, got.SameDayOthers, 1)
}

func TestNewEngine_ZoneSelection(t *testing.T) {
	recs := []hearing.HearingRecord{record("1", "2024-06-10T09:10:00")}

	utc := hearingtime.NewEngine(hearingtime.UTC(), 0, 0)
	assert.Equal(t, "UTC", utc.Zone.Name)
	assert.Equal(t, time.Duration(0), utc.Zone.Offset)
	got := utc.ClassifyHearingsForToday(recs, scenarioNow)
	require.NotNil(t, got.Current)
	assert.Equal(t, "1", got.Current.ID)

	// An unset zone falls back to IST, where 09:10 is five hours before now.
	unset := hearingtime.NewEngine(hearingtime.CivilZone{}, 0, 0)
	assert.Equal(t, hearingtime.IST(), unset.Zone)
	got = unset.ClassifyHearingsForToday(recs, scenarioNow)
	assert.Nil(t, got.Current)
	assert.Len(t, got.SameDayOthers, 1)

	assert.True(t, hearingtime.CivilZone{}.IsZero())
	assert.False(t, hearingtime.UTC().IsZero())
}

func TestNextInLine(t *testing.T) {
	engine := &hearingtime.Engine{}
	others := []hearing.HearingRecord{
		record("morning", "2024-06-10T10:00:00"),
		record("late", "2024-06-10T17:00:00"),
		record("soon", "2024-06-10T15:30:00"),
		record("bad", "??"),
	}

	next := engine.NextInLine(others, scenarioNow)
	require.NotNil(t, next)
	assert.Equal(t, "soon", next.ID)

	assert.Nil(t, engine.NextInLine(others[:1], scenarioNow))
}
