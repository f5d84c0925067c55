package hearing

import "time"

// QuarantinedRow records a row that ingestion flagged as unusable for time-based views.
type QuarantinedRow struct {
	ID           string `json:"id"`
	CaseNumber   string `json:"case_number,omitempty"`
	RawTimestamp string `json:"raw_timestamp,omitempty"`
	Reason       string `json:"reason"`
}

// Snapshot is the result of one poll of the case store.
type Snapshot struct {
	ID          string           `json:"id"`
	FetchedAt   time.Time        `json:"fetched_at"`
	Records     []HearingRecord  `json:"records"`
	Quarantined []QuarantinedRow `json:"quarantined"`
}
