package ingest

import (
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"

	"sme_platform/pkg/models"
)

// processHTML extracts the first table from an HTML document. Header
// cells come from <th> elements when present, otherwise from the first
// row of the table.
func (s *Service) processHTML(path string) (*models.StatementBundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("html_open: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("html_parse: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("html_parse: no table found")
	}

	var headers []string
	table.Find("th").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, cell.Text())
	})

	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		row := make([]string, 0, cells.Length())
		cells.Each(func(_ int, td *goquery.Selection) {
			row = append(row, td.Text())
		})
		rows = append(rows, row)
	})

	if len(headers) == 0 && len(rows) > 0 {
		headers, rows = rows[0], rows[1:]
	}
	if len(headers) == 0 || len(rows) == 0 {
		return nil, fmt.Errorf("html_parse: table has no data rows")
	}

	return normalizeColumns(headers, rows), nil
}
