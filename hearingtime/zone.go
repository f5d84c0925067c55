package hearingtime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DEFAULT_ZONE_NAME and DEFAULT_ZONE_OFFSET describe India Standard Time,
// the civil zone hearing timestamps are stored in when nothing else is configured.
const DEFAULT_ZONE_NAME = "IST"
const DEFAULT_ZONE_OFFSET = 5*time.Hour + 30*time.Minute

// CivilZone is a fixed-offset civil timezone. There is no DST handling and no
// lookup in the platform timezone database. The zero value is not UTC: an
// Engine treats an unnamed zero-offset zone as unset and uses IST. Use UTC()
// for a real UTC zone.
type CivilZone struct {
	Name   string
	Offset time.Duration
}

// IST returns the default civil zone (UTC+05:30).
func IST() CivilZone {
	return CivilZone{Name: DEFAULT_ZONE_NAME, Offset: DEFAULT_ZONE_OFFSET}
}

// UTC returns the named UTC zone.
func UTC() CivilZone {
	return CivilZone{Name: "UTC", Offset: 0}
}

// IsZero reports whether the zone is unset.
func (z CivilZone) IsZero() bool {
	return z.Name == "" && z.Offset == 0
}

// Location returns a fixed time.Location for the zone.
func (z CivilZone) Location() *time.Location {
	return time.FixedZone(z.Name, int(z.Offset/time.Second))
}

// Today returns the calendar date in the zone for the given instant. The offset
// is applied additively to the UTC instant before the fields are read.
func (z CivilZone) Today(now time.Time) CalendarDate {
	shifted := now.UTC().Add(z.Offset)
	y, m, d := shifted.Date()
	return CalendarDate{Year: y, Month: int(m), Day: d}
}

// Instant builds the absolute instant for wall-clock fields in the zone.
func (z CivilZone) Instant(ts ParsedTimestamp) time.Time {
	local := time.Date(ts.Year, time.Month(ts.Month), ts.Day, ts.Hour, ts.Minute, ts.Second, 0, time.UTC)
	return local.Add(-z.Offset)
}

// String formats the zone as "IST (+05:30)".
func (z CivilZone) String() string {
	return fmt.Sprintf("%s (%s)", z.Name, FormatOffset(z.Offset))
}

// ParseOffset parses offsets like "+05:30", "-04:00" or "+0530".
func ParseOffset(raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty offset")
	}
	if s == "Z" || s == "UTC" {
		return 0, nil
	}

	sign := time.Duration(1)
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	default:
		return 0, fmt.Errorf("offset %q must start with + or -", raw)
	}

	var hh, mm string
	if i := strings.IndexByte(s, ':'); i >= 0 {
		hh, mm = s[:i], s[i+1:]
	} else if len(s) == 4 {
		hh, mm = s[:2], s[2:]
	} else {
		hh, mm = s, "0"
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 14 {
		return 0, fmt.Errorf("invalid offset hours in %q", raw)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid offset minutes in %q", raw)
	}

	return sign * (time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), nil
}

// FormatOffset renders an offset as "+05:30".
func FormatOffset(d time.Duration) string {
	sign := '+'
	if d < 0 {
		sign = '-'
		d = -d
	}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}
