package casestore

import (
	"context"

	"hearing-server/models/hearing"
)

// CaseStoreAPI reads the case rows the hearing views are computed from.
type CaseStoreAPI interface {
	ListCases(ctx context.Context) ([]hearing.CaseRow, error)
}
