package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"sme_platform/pkg/models"
)

// processXLSX reads the first sheet of a workbook into a normalized
// bundle. The first row is treated as the header row.
func (s *Service) processXLSX(path string) (*models.StatementBundle, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx_open: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx_parse: workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx_parse: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("xlsx_parse: sheet has no data rows")
	}

	return normalizeColumns(rows[0], rows[1:]), nil
}
