package casestore

import (
	"context"
	"fmt"

	"hearing-server/models/hearing"
	"hearing-server/util"
)

// CaseStoreApiClientMock serves case rows from a JSON fixture on disk.
type CaseStoreApiClientMock struct {
	fixturePath string
}

func NewCaseStoreApiClientMock(fixturePath string) *CaseStoreApiClientMock {
	return &CaseStoreApiClientMock{fixturePath: fixturePath}
}

// ListCases rereads the fixture on every call so edits show up on the next refresh.
func (c *CaseStoreApiClientMock) ListCases(ctx context.Context) ([]hearing.CaseRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := util.ReadCaseRowsFromJSON(c.fixturePath)
	if err != nil {
		return nil, fmt.Errorf("could not read case rows fixture: %w", err)
	}
	return rows, nil
}
