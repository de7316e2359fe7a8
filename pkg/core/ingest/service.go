// Package ingest normalizes uploaded statement files (CSV, XLSX, HTML)
// into the three-section label -> value bundle the extractor consumes.
// Parse failures are hard errors; individual unreadable cells are soft
// gaps that only reduce coverage.
package ingest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"sme_platform/pkg/models"
)

// Service processes uploaded financial data files.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// ProcessFile parses a statement file into a normalized bundle.
func (s *Service) ProcessFile(path string, fileType models.FileType) (*models.StatementBundle, error) {
	switch fileType {
	case models.FileTypeCSV:
		return s.processCSV(path)
	case models.FileTypeXLSX:
		return s.processXLSX(path)
	case models.FileTypeHTML:
		return s.processHTML(path)
	}
	return nil, fmt.Errorf("unsupported_file_type: %s", fileType)
}

// Validate reports whether the bundle carries at least some data.
// Callers must not mark a statement processed when this fails.
func (s *Service) Validate(b *models.StatementBundle) bool {
	return !b.IsEmpty()
}

// DetectAnomalies flags suspicious values in a normalized bundle.
// Labels are scanned in sorted order so the report reads the same on
// every run.
func (s *Service) DetectAnomalies(b *models.StatementBundle) []string {
	anomalies := []string{}

	labels := make([]string, 0, len(b.BalanceSheet))
	for label := range b.BalanceSheet {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		if v, ok := parseNumber(fmt.Sprint(b.BalanceSheet[label])); ok && v < 0 && strings.Contains(strings.ToLower(label), "asset") {
			anomalies = append(anomalies, fmt.Sprintf("Negative asset value: %s", label))
		}
	}

	hasRevenue := false
	for label := range b.IncomeStatement {
		lower := strings.ToLower(label)
		if strings.Contains(lower, "revenue") || strings.Contains(lower, "sales") {
			hasRevenue = true
			break
		}
	}
	if !hasRevenue {
		anomalies = append(anomalies, "Missing revenue/sales data")
	}

	return anomalies
}

// normalizeColumns classifies tabular data into statement sections.
// Balance sheet items keep the latest (stock) value; income and cash
// flow items average across rows (flow). Unclassified numeric columns
// default to the income statement.
func normalizeColumns(headers []string, rows [][]string) *models.StatementBundle {
	bundle := &models.StatementBundle{
		BalanceSheet:    map[string]interface{}{},
		IncomeStatement: map[string]interface{}{},
		CashFlow:        map[string]interface{}{},
	}

	for col, header := range headers {
		lower := strings.ToLower(strings.TrimSpace(header))
		if lower == "date" || lower == "period" || lower == "month" || lower == "year" {
			continue
		}

		var values []float64
		for _, row := range rows {
			if col >= len(row) {
				continue
			}
			if v, ok := parseNumber(row[col]); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		latest := values[len(values)-1]
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		avg := sum / float64(len(values))

		// "cash flow" must win over the bare "cash" balance sheet term.
		switch {
		case containsAny(lower, "cash flow", "operating activities", "investing", "financing"):
			bundle.CashFlow[header] = avg
		case containsAny(lower, "asset", "cash", "inventory", "receivable", "equipment", "property"),
			containsAny(lower, "liability", "liabilities", "payable", "debt", "loan", "equity", "capital"):
			bundle.BalanceSheet[header] = latest
		default:
			bundle.IncomeStatement[header] = avg
		}
	}

	return bundle
}

func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// parseNumber reads a cell, tolerating thousands separators, currency
// signs and surrounding whitespace.
func parseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
