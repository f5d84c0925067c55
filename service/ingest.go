package services

import (
	"strings"

	"go.uber.org/zap"

	"hearing-server/hearingtime"
	"hearing-server/models/hearing"
)

const (
	REASON_MISSING_ID          = "missing id"
	REASON_MALFORMED_TIMESTAMP = "malformed next_hearing_date"
)

// IngestResult splits store rows into validated records and flagged rows.
type IngestResult struct {
	Records     []hearing.HearingRecord
	Quarantined []hearing.QuarantinedRow
}

// IngestCaseRows validates raw store rows. Rows without an id are dropped and
// quarantined. Rows with an unparsable hearing date are kept for the case
// listing and quarantined so the time-based views skip them visibly.
func IngestCaseRows(rows []hearing.CaseRow, logger *zap.Logger) IngestResult {
	result := IngestResult{
		Records:     make([]hearing.HearingRecord, 0, len(rows)),
		Quarantined: []hearing.QuarantinedRow{},
	}

	for i, row := range rows {
		id := strings.TrimSpace(hearing.StringOrEmpty(row.ID))
		caseNumber := hearing.StringOrEmpty(row.CaseNumber)
		rawTs := strings.TrimSpace(hearing.StringOrEmpty(row.NextHearingDate))

		if id == "" {
			logger.Warn("Rejecting case row without id", zap.Int("index", i), zap.String("case_number", caseNumber))
			result.Quarantined = append(result.Quarantined, hearing.QuarantinedRow{
				CaseNumber:   caseNumber,
				RawTimestamp: rawTs,
				Reason:       REASON_MISSING_ID,
			})
			continue
		}

		rec := hearing.HearingRecord{
			ID:               id,
			CaseNumber:       caseNumber,
			Title:            hearing.StringOrEmpty(row.Title),
			Status:           hearing.ParseStatus(hearing.StringOrEmpty(row.Status)),
			HearingTimestamp: rawTs,
		}

		if rec.HasTimestamp() {
			if _, err := hearingtime.ParseLocalHearingTimestamp(rawTs); err != nil {
				logger.Warn("Quarantining case with malformed hearing date",
					zap.String("id", id), zap.String("raw", rawTs), zap.Error(err))
				result.Quarantined = append(result.Quarantined, hearing.QuarantinedRow{
					ID:           id,
					CaseNumber:   caseNumber,
					RawTimestamp: rawTs,
					Reason:       REASON_MALFORMED_TIMESTAMP,
				})
			}
		}
		result.Records = append(result.Records, rec)
	}
	return result
}
