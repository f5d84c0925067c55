// Package hearingtime holds the pure time logic behind the hearing views:
// timestamp parsing, "live now" detection, calendar bucketing and ranking.
//
// Every function takes "now" explicitly and none of them keep state, so
// calling one twice with the same inputs gives the same result.
package hearingtime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("malformed hearing timestamp")

// ParseError reports why a stored hearing timestamp could not be decomposed.
type ParseError struct {
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse hearing timestamp %q: %s", e.Raw, e.Reason)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// CalendarDate is a (year, month, day) triple in the civil zone.
type CalendarDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Key returns the zero-padded "YYYY-MM-DD" form used for calendar buckets.
func (d CalendarDate) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d CalendarDate) String() string {
	return d.Key()
}

// ordinal gives a number that grows by one per day, for range checks and sorting.
func (d CalendarDate) ordinal() int64 {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// Before reports whether d falls on an earlier day than o.
func (d CalendarDate) Before(o CalendarDate) bool {
	return d.ordinal() < o.ordinal()
}

// AddDays shifts the date by n days.
func (d CalendarDate) AddDays(n int) CalendarDate {
	t := time.Date(d.Year, time.Month(d.Month), d.Day+n, 0, 0, 0, 0, time.UTC)
	return CalendarDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Weekday returns the day of the week for the date.
func (d CalendarDate) Weekday() time.Weekday {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// ParsedTimestamp is a stored hearing time split into its wall-clock fields.
type ParsedTimestamp struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// Date drops the clock part.
func (p ParsedTimestamp) Date() CalendarDate {
	return CalendarDate{Year: p.Year, Month: p.Month, Day: p.Day}
}

// Clock returns the zero-padded 24h "HH:mm" string.
func (p ParsedTimestamp) Clock() string {
	return fmt.Sprintf("%02d:%02d", p.Hour, p.Minute)
}

// String formats the timestamp back to the stored "YYYY-MM-DDTHH:mm:ss" layout.
func (p ParsedTimestamp) String() string {
	return fmt.Sprintf("%sT%s:%02d", p.Date().Key(), p.Clock(), p.Second)
}

// ParseLocalHearingTimestamp splits "YYYY-MM-DDTHH:mm[:ss]" into its fields.
// No timezone conversion happens: the numbers are taken as civil wall-clock time.
func ParseLocalHearingTimestamp(raw string) (ParsedTimestamp, error) {
	var out ParsedTimestamp

	if strings.TrimSpace(raw) == "" {
		return out, &ParseError{Raw: raw, Reason: "empty"}
	}

	parts := strings.Split(raw, "T")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return out, &ParseError{Raw: raw, Reason: "expected a date part and a time part separated by T"}
	}

	dateFields := strings.Split(parts[0], "-")
	if len(dateFields) != 3 {
		return out, &ParseError{Raw: raw, Reason: "date part must be YYYY-MM-DD"}
	}
	timeFields := strings.Split(parts[1], ":")
	if len(timeFields) != 2 && len(timeFields) != 3 {
		return out, &ParseError{Raw: raw, Reason: "time part must be HH:mm or HH:mm:ss"}
	}

	nums := make([]int, 0, 6)
	for _, f := range append(dateFields, timeFields...) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return ParsedTimestamp{}, &ParseError{Raw: raw, Reason: fmt.Sprintf("non-numeric field %q", f)}
		}
		nums = append(nums, n)
	}

	out = ParsedTimestamp{
		Year:   nums[0],
		Month:  nums[1],
		Day:    nums[2],
		Hour:   nums[3],
		Minute: nums[4],
	}
	if len(nums) == 6 {
		out.Second = nums[5]
	}

	if reason := validateFields(out); reason != "" {
		return ParsedTimestamp{}, &ParseError{Raw: raw, Reason: reason}
	}
	return out, nil
}

func validateFields(p ParsedTimestamp) string {
	switch {
	case p.Year < 1:
		return "year out of range"
	case p.Month < 1 || p.Month > 12:
		return "month out of range"
	case p.Day < 1 || p.Day > daysIn(p.Year, p.Month):
		return "day out of range"
	case p.Hour < 0 || p.Hour > 23:
		return "hour out of range"
	case p.Minute < 0 || p.Minute > 59:
		return "minute out of range"
	case p.Second < 0 || p.Second > 59:
		return "second out of range"
	}
	return ""
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
