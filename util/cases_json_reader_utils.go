package util

import (
	"fmt"
	"os"

	"hearing-server/models/hearing"
)

// ReadCaseRowsFromJSON loads case store rows from a JSON array on disk.
func ReadCaseRowsFromJSON(filePath string) ([]hearing.CaseRow, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	rows, err := hearing.DecodeCaseRows(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode case rows from %q: %w", filePath, err)
	}
	return rows, nil
}
