package ingest

import (
	"encoding/csv"
	"fmt"
	"os"

	"sme_platform/pkg/models"
)

// processCSV reads a headered CSV file into a normalized bundle.
func (s *Service) processCSV(path string) (*models.StatementBundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv_open: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are tolerated
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv_parse: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv_parse: file has no data rows")
	}

	return normalizeColumns(records[0], records[1:]), nil
}
