package hearingtime_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearing-server/hearingtime"
)

func TestParseLocalHearingTimestamp(t *testing.T) {
	tests := []struct {
		raw  string
		want hearingtime.ParsedTimestamp
	}{
		{"2024-06-10T14:45:00", hearingtime.ParsedTimestamp{Year: 2024, Month: 6, Day: 10, Hour: 14, Minute: 45}},
		{"2024-06-10T14:45", hearingtime.ParsedTimestamp{Year: 2024, Month: 6, Day: 10, Hour: 14, Minute: 45}},
		{"2024-12-31T23:59:59", hearingtime.ParsedTimestamp{Year: 2024, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59}},
		{"2024-02-29T00:00:00", hearingtime.ParsedTimestamp{Year: 2024, Month: 2, Day: 29}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := hearingtime.ParseLocalHearingTimestamp(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLocalHearingTimestamp_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not-a-date",
		"2024-06-10",
		"2024-06-10T",
		"T14:45:00",
		"2024-06-10T14:45:00T01",
		"2024-06T14:45:00",
		"2024-06-10T14",
		"2024-06-10T14:45:00:00",
		"2024-ab-10T14:45:00",
		"2024-06-10T14:4x:00",
		"2024-13-10T14:45:00",
		"2024-00-10T14:45:00",
		"2023-02-29T10:00:00",
		"2024-06-31T10:00:00",
		"2024-06-10T24:00:00",
		"2024-06-10T10:60:00",
		"2024-06-10T10:00:60",
		"2024-06-10T14:45:00Z",
		"2024-06-10T14:45:00+05:30",
	}
	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			_, err := hearingtime.ParseLocalHearingTimestamp(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, hearingtime.ErrParse))

			var perr *hearingtime.ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, raw, perr.Raw)
		})
	}
}

func TestParsedTimestamp_RoundTrip(t *testing.T) {
	minutes := []int{0, 1, 29, 30, 59}
	for year := 2020; year <= 2030; year++ {
		for month := 1; month <= 12; month++ {
			days := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
			for day := 1; day <= days; day++ {
				for hour := 0; hour < 24; hour++ {
					for _, minute := range minutes {
						raw := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:00", year, month, day, hour, minute)
						got, err := hearingtime.ParseLocalHearingTimestamp(raw)
						if err != nil {
							t.Fatalf("parse %s: %v", raw, err)
						}
						want := hearingtime.ParsedTimestamp{Year: year, Month: month, Day: day, Hour: hour, Minute: minute}
						if got != want {
							t.Fatalf("parse %s = %+v, want %+v", raw, got, want)
						}
						if got.String() != raw {
							t.Fatalf("format %+v = %s, want %s", got, got.String(), raw)
						}
					}
				}
			}
		}
	}
}

func TestParsedTimestamp_Clock(t *testing.T) {
	ts := hearingtime.ParsedTimestamp{Year: 2024, Month: 6, Day: 1, Hour: 9, Minute: 5}
	assert.Equal(t, "09:05", ts.Clock())
	assert.Equal(t, "2024-06-01", ts.Date().Key())
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{"+05:30", 5*time.Hour + 30*time.Minute, false},
		{"+0530", 5*time.Hour + 30*time.Minute, false},
		{"-04:00", -4 * time.Hour, false},
		{"+9", 9 * time.Hour, false},
		{"Z", 0, false},
		{"05:30", 0, true},
		{"+25:00", 0, true},
		{"+05:75", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := hearingtime.ParseOffset(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "+05:30", hearingtime.FormatOffset(5*time.Hour+30*time.Minute))
	assert.Equal(t, "-03:00", hearingtime.FormatOffset(-3*time.Hour))
	assert.Equal(t, "+00:00", hearingtime.FormatOffset(0))
}

func TestCivilZone_TodayAndInstant(t *testing.T) {
	zone := hearingtime.IST()

	// 2024-06-10T20:00Z is already 2024-06-11 01:30 in IST.
	now := time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, hearingtime.CalendarDate{Year: 2024, Month: 6, Day: 11}, zone.Today(now))

	// The result must not depend on the location attached to now.
	inLA := now.In(time.FixedZone("PDT", -7*3600))
	assert.Equal(t, zone.Today(now), zone.Today(inLA))

	ts := hearingtime.ParsedTimestamp{Year: 2024, Month: 6, Day: 10, Hour: 14, Minute: 30}
	assert.True(t, zone.Instant(ts).Equal(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, "IST (+05:30)", zone.String())
}
