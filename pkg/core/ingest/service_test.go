package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"sme_platform/pkg/models"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessCSVClassifiesColumns(t *testing.T) {
	path := writeTemp(t, "statement.csv",
		"Date,Revenue,Current Assets,Operating Cash Flow\n"+
			"2024-01,100000,500000,20000\n"+
			"2024-02,120000,550000,30000\n")

	svc := NewService()
	bundle, err := svc.ProcessFile(path, models.FileTypeCSV)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}

	// Income statement columns average across rows.
	if got := bundle.IncomeStatement["Revenue"]; got != 110000.0 {
		t.Errorf("Revenue = %v, want 110000", got)
	}
	// Balance sheet columns keep the latest value.
	if got := bundle.BalanceSheet["Current Assets"]; got != 550000.0 {
		t.Errorf("Current Assets = %v, want 550000", got)
	}
	// Cash flow columns average.
	if got := bundle.CashFlow["Operating Cash Flow"]; got != 25000.0 {
		t.Errorf("Operating Cash Flow = %v, want 25000", got)
	}
	if _, ok := bundle.IncomeStatement["Date"]; ok {
		t.Error("Date column should be skipped")
	}
}

func TestProcessCSVTolerantParsing(t *testing.T) {
	path := writeTemp(t, "messy.csv",
		"Revenue,Notes\n"+
			"\"1,000\",first month\n"+
			"n/a,second month\n"+
			"3000,third month\n")

	svc := NewService()
	bundle, err := svc.ProcessFile(path, models.FileTypeCSV)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}

	// Unreadable cells are skipped, not fatal: (1000+3000)/2.
	if got := bundle.IncomeStatement["Revenue"]; got != 2000.0 {
		t.Errorf("Revenue = %v, want 2000", got)
	}
	if _, ok := bundle.IncomeStatement["Notes"]; ok {
		t.Error("non-numeric column should be dropped")
	}
}

func TestProcessCSVNoDataRows(t *testing.T) {
	path := writeTemp(t, "empty.csv", "Revenue,Expenses\n")

	svc := NewService()
	if _, err := svc.ProcessFile(path, models.FileTypeCSV); err == nil {
		t.Fatal("expected error for header-only file")
	}
}

func TestProcessXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]interface{}{
		{"Period", "Sales", "Total Liabilities"},
		{"Q1", 200000, 80000},
		{"Q2", 240000, 90000},
	}
	for i, row := range cells {
		addr, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "statement.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	svc := NewService()
	bundle, err := svc.ProcessFile(path, models.FileTypeXLSX)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}

	if got := bundle.IncomeStatement["Sales"]; got != 220000.0 {
		t.Errorf("Sales = %v, want 220000", got)
	}
	if got := bundle.BalanceSheet["Total Liabilities"]; got != 90000.0 {
		t.Errorf("Total Liabilities = %v, want 90000", got)
	}
}

func TestProcessHTMLTable(t *testing.T) {
	path := writeTemp(t, "statement.html", `
<html><body>
<table>
  <tr><th>Month</th><th>Revenue</th><th>Accounts Payable</th></tr>
  <tr><td>Jan</td><td>50,000</td><td>10000</td></tr>
  <tr><td>Feb</td><td>70,000</td><td>12000</td></tr>
</table>
</body></html>`)

	svc := NewService()
	bundle, err := svc.ProcessFile(path, models.FileTypeHTML)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}

	if got := bundle.IncomeStatement["Revenue"]; got != 60000.0 {
		t.Errorf("Revenue = %v, want 60000", got)
	}
	if got := bundle.BalanceSheet["Accounts Payable"]; got != 12000.0 {
		t.Errorf("Accounts Payable = %v, want 12000", got)
	}
}

func TestProcessHTMLNoTable(t *testing.T) {
	path := writeTemp(t, "plain.html", "<html><body><p>no tables here</p></body></html>")

	svc := NewService()
	if _, err := svc.ProcessFile(path, models.FileTypeHTML); err == nil {
		t.Fatal("expected error for document without a table")
	}
}

func TestValidate(t *testing.T) {
	svc := NewService()
	empty := &models.StatementBundle{
		BalanceSheet:    map[string]interface{}{},
		IncomeStatement: map[string]interface{}{},
		CashFlow:        map[string]interface{}{},
	}
	if svc.Validate(empty) {
		t.Error("empty bundle should not validate")
	}
	empty.IncomeStatement["Revenue"] = 1000.0
	if !svc.Validate(empty) {
		t.Error("bundle with data should validate")
	}
}

func TestDetectAnomalies(t *testing.T) {
	svc := NewService()
	b := &models.StatementBundle{
		BalanceSheet:    map[string]interface{}{"Current Assets": -500.0},
		IncomeStatement: map[string]interface{}{"Rent": 2000.0},
		CashFlow:        map[string]interface{}{},
	}
	got := svc.DetectAnomalies(b)
	if len(got) != 2 {
		t.Fatalf("anomalies = %v, want negative asset and missing revenue", got)
	}
}

func TestDetectAnomaliesStableOrder(t *testing.T) {
	svc := NewService()
	b := &models.StatementBundle{
		BalanceSheet: map[string]interface{}{
			"Intangible Assets": -200.0,
			"Current Assets":    -500.0,
			"Fixed Assets":      -300.0,
		},
		IncomeStatement: map[string]interface{}{"Revenue": 1000.0},
		CashFlow:        map[string]interface{}{},
	}

	want := []string{
		"Negative asset value: Current Assets",
		"Negative asset value: Fixed Assets",
		"Negative asset value: Intangible Assets",
	}
	for i := 0; i < 50; i++ {
		got := svc.DetectAnomalies(b)
		if len(got) != len(want) {
			t.Fatalf("run %d: anomalies = %v", i, got)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("run %d: anomaly %d = %q, want %q", i, j, got[j], want[j])
			}
		}
	}
}
