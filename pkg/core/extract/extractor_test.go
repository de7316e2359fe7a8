package extract

import (
	"testing"

	"sme_platform/pkg/models"
)

func bundle(bs, is map[string]interface{}) *models.StatementBundle {
	return &models.StatementBundle{
		BalanceSheet:    bs,
		IncomeStatement: is,
		CashFlow:        map[string]interface{}{},
	}
}

func TestKeywordSumming(t *testing.T) {
	v := FromBundle(bundle(map[string]interface{}{
		"Cash and Bank":       100.0,
		"Trade Receivables":   200.0,
		"Inventory (Stock)":   50.0,
		"Current Liabilities": 150.0,
	}, nil))

	// current_assets matches cash + receivable + inventory labels.
	if v.CurrentAssets == nil || *v.CurrentAssets != 350.0 {
		t.Fatalf("expected current assets 350, got %v", v.CurrentAssets)
	}
	if v.Inventory == nil || *v.Inventory != 50.0 {
		t.Errorf("expected inventory 50, got %v", v.Inventory)
	}
	if v.CurrentLiabilities == nil || *v.CurrentLiabilities != 150.0 {
		t.Errorf("expected current liabilities 150, got %v", v.CurrentLiabilities)
	}
	// No explicit total asset line: falls back to current assets.
	if v.TotalAssets == nil || *v.TotalAssets != 350.0 {
		t.Errorf("expected total assets fallback 350, got %v", v.TotalAssets)
	}
}

func TestZeroTotalMeansAbsent(t *testing.T) {
	v := FromBundle(bundle(map[string]interface{}{
		"Inventory": 0.0,
	}, nil))
	if v.Inventory != nil {
		t.Errorf("zero-sum field must be absent, got %v", *v.Inventory)
	}
}

func TestMalformedValuesSkipped(t *testing.T) {
	v := FromBundle(bundle(nil, map[string]interface{}{
		"Revenue":       "1,000",
		"Other Revenue": "n/a",
		"Sales Notes":   nil,
	}))
	if v.Revenue == nil || *v.Revenue != 1000.0 {
		t.Fatalf("expected revenue 1000 with malformed rows skipped, got %v", v.Revenue)
	}
}

func TestDerivedGrossProfitAndEquity(t *testing.T) {
	v := FromBundle(bundle(map[string]interface{}{
		"Total Assets":      1000.0,
		"Total Liabilities": 600.0,
	}, map[string]interface{}{
		"Revenue": 1000.0,
		"COGS":    600.0,
	}))

	if v.GrossProfit == nil || *v.GrossProfit != 400.0 {
		t.Errorf("expected derived gross profit 400, got %v", v.GrossProfit)
	}
	if v.Equity == nil || *v.Equity != 400.0 {
		t.Errorf("expected derived equity 400, got %v", v.Equity)
	}
}

func TestDirectGrossProfitWins(t *testing.T) {
	v := FromBundle(bundle(nil, map[string]interface{}{
		"Revenue":      1000.0,
		"COGS":         600.0,
		"Gross Profit": 390.0,
	}))
	if v.GrossProfit == nil || *v.GrossProfit != 390.0 {
		t.Errorf("explicit gross profit must not be overwritten, got %v", v.GrossProfit)
	}
}

func TestCaseInsensitiveMatching(t *testing.T) {
	v := FromBundle(bundle(nil, map[string]interface{}{
		"NET PROFIT AFTER TAX": 120.0,
	}))
	if v.NetIncome == nil || *v.NetIncome != 120.0 {
		t.Errorf("expected net income 120, got %v", v.NetIncome)
	}
}

func TestEmptyBundle(t *testing.T) {
	v := FromBundle(&models.StatementBundle{})
	if v.Revenue != nil || v.CurrentAssets != nil || v.Equity != nil {
		t.Error("empty bundle must extract no values")
	}
}
