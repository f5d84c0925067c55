package casestore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"hearing-server/api"
	"hearing-server/models/hearing"
)

const CASE_COLUMNS = "id,case_number,title,status,next_hearing_date"

const DEFAULT_CASES_TABLE = "cases"

// SupabaseApiClient reads case rows from a PostgREST endpoint.
type SupabaseApiClient struct {
	*api.HTTPClient
	apiKey string
	table  string
}

// NewSupabaseApiClient creates a client for the given table. An empty table uses DEFAULT_CASES_TABLE.
func NewSupabaseApiClient(httpClient *api.HTTPClient, apiKey, table string) *SupabaseApiClient {
	if table == "" {
		table = DEFAULT_CASES_TABLE
	}
	return &SupabaseApiClient{
		HTTPClient: httpClient,
		apiKey:     apiKey,
		table:      table,
	}
}

// ListCases fetches every case ordered by hearing date ascending.
func (c *SupabaseApiClient) ListCases(ctx context.Context) ([]hearing.CaseRow, error) {
	query := url.Values{}
	query.Set("select", CASE_COLUMNS)
	query.Set("order", "next_hearing_date.asc")

	headers := map[string]string{
		"apikey":        c.apiKey,
		"Authorization": "Bearer " + c.apiKey,
	}

	body, err := c.RequestRaw(ctx, http.MethodGet, "/rest/v1/"+c.table, query, headers, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases from %s: %w", c.table, err)
	}
	rows, err := hearing.DecodeCaseRows(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cases from %s: %w", c.table, err)
	}
	return rows, nil
}
