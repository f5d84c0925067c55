package hearing

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrContractViolation is returned when a collection payload is not a JSON array.
var ErrContractViolation = errors.New("contract violation: case rows payload must be a JSON array")

// Status is the lifecycle state of a case hearing.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusHearing    Status = "hearing"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusAdjourned  Status = "adjourned"
	StatusUnknown    Status = "unknown"
)

// ParseStatus normalizes a free-form store status. Empty input maps to unknown.
func ParseStatus(raw string) Status {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusScheduled, StatusHearing, StatusInProgress, StatusCompleted, StatusAdjourned:
		return s
	case "in_progress", "active":
		return StatusInProgress
	default:
		return StatusUnknown
	}
}

// IsCompleted reports whether the hearing is closed.
func (s Status) IsCompleted() bool {
	return s == StatusCompleted
}

// Display is the label used by calendar views, where "hearing" shows as "scheduled".
func (s Status) Display() Status {
	if s == StatusHearing {
		return StatusScheduled
	}
	return s
}

// CaseRow is one row of the external cases table. Every column may be null.
type CaseRow struct {
	ID              *string `json:"id"`
	CaseNumber      *string `json:"case_number"`
	Title           *string `json:"title"`
	Status          *string `json:"status"`
	NextHearingDate *string `json:"next_hearing_date"`
}

// HearingRecord is a case row that passed ingestion. HearingTimestamp keeps the
// raw "YYYY-MM-DDTHH:mm:ss" text and is empty when the store had no date.
type HearingRecord struct {
	ID               string `json:"id"`
	CaseNumber       string `json:"case_number"`
	Title            string `json:"title"`
	Status           Status `json:"status"`
	HearingTimestamp string `json:"next_hearing_date,omitempty"`
}

// HasTimestamp reports whether the record carries a hearing date at all.
func (r HearingRecord) HasTimestamp() bool {
	return r.HearingTimestamp != ""
}

// DecodeCaseRows decodes a store payload. A top-level null or anything that is
// not an array fails with ErrContractViolation.
func DecodeCaseRows(data []byte) ([]CaseRow, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" || !strings.HasPrefix(trimmed, "[") {
		return nil, ErrContractViolation
	}

	var rows []CaseRow
	if err := json.Unmarshal([]byte(trimmed), &rows); err != nil {
		return nil, errors.Join(ErrContractViolation, err)
	}
	return rows, nil
}

// StringOrEmpty dereferences an optional column.
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
