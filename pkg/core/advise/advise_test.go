package advise

import (
	"strings"
	"testing"

	"sme_platform/pkg/models"
)

func fp(x float64) *float64 { return &x }

func testCompany(revenue float64) *models.Company {
	c := &models.Company{ID: "c1", Industry: models.IndustryManufacturing}
	if revenue > 0 {
		c.AnnualRevenue = &revenue
	}
	return c
}

func TestCostGrossMarginRule(t *testing.T) {
	company := testCompany(50000000)
	m := &models.FinancialMetrics{GrossMargin: fp(25)}

	recs := CostRecommendations(company, m)
	if len(recs) != 1 {
		t.Fatalf("expected exactly one recommendation, got %d", len(recs))
	}
	rec := recs[0]
	if rec.Title != "Improve Gross Margin" {
		t.Errorf("unexpected title %q", rec.Title)
	}
	if rec.Priority != models.PriorityHigh {
		t.Errorf("expected high priority, got %s", rec.Priority)
	}
	if rec.EstimatedImpact == nil || *rec.EstimatedImpact != 2500000.0 {
		t.Errorf("expected impact 2500000, got %v", rec.EstimatedImpact)
	}
	if !strings.Contains(rec.Description, "25%") {
		t.Errorf("description should embed the margin: %q", rec.Description)
	}
}

func TestCostRulesFireIndependently(t *testing.T) {
	company := testCompany(10000000)
	m := &models.FinancialMetrics{
		GrossMargin:       fp(20),
		ReceivablesDays:   fp(75),
		InventoryTurnover: fp(2),
		DebtToEquity:      fp(2.0),
		NetMargin:         fp(4),
	}
	recs := CostRecommendations(company, m)
	if len(recs) != 5 {
		t.Fatalf("expected all 5 cost rules to fire, got %d", len(recs))
	}
}

func TestNilMetricsYieldEmpty(t *testing.T) {
	company := testCompany(0)
	if recs := CostRecommendations(company, nil); len(recs) != 0 {
		t.Error("nil metrics must yield no cost recommendations")
	}
	if recs := WorkingCapitalRecommendations(company, nil); len(recs) != 0 {
		t.Error("nil metrics must yield no working capital recommendations")
	}
}

func TestUnknownRevenueDropsImpactNotRule(t *testing.T) {
	company := testCompany(0)
	m := &models.FinancialMetrics{GrossMargin: fp(25)}
	recs := CostRecommendations(company, m)
	if len(recs) != 1 {
		t.Fatalf("rule should still fire without revenue, got %d recs", len(recs))
	}
	if recs[0].EstimatedImpact != nil {
		t.Error("impact must be nil when revenue is unknown")
	}
}

func TestWorkingCapitalRules(t *testing.T) {
	company := testCompany(10000000)
	m := &models.FinancialMetrics{
		CashConversionCycle: fp(75),
		ReceivablesDays:     fp(65),
		PayablesDays:        fp(20),
		CurrentRatio:        fp(1.1),
	}
	recs := WorkingCapitalRecommendations(company, m)
	// ccc>60, rd>45, pd<30, cr<1.2, and invoice discounting (rd>60 with
	// revenue above the floor) all fire.
	if len(recs) != 5 {
		t.Fatalf("expected 5 working capital recommendations, got %d", len(recs))
	}

	// Liquidity rule carries no monetary impact.
	for _, rec := range recs {
		if rec.Title == "Improve Liquidity Position" && rec.EstimatedImpact != nil {
			t.Error("liquidity recommendation must have no estimated impact")
		}
	}
}

func TestInvoiceDiscountingRevenueFloor(t *testing.T) {
	small := testCompany(1000000)
	m := &models.FinancialMetrics{ReceivablesDays: fp(65)}
	for _, rec := range WorkingCapitalRecommendations(small, m) {
		if rec.Title == "Consider Invoice Discounting" {
			t.Error("invoice discounting must not fire below the revenue floor")
		}
	}
}

func TestComplianceIssuesAndRecommendations(t *testing.T) {
	bare := &models.Company{ID: "c2"}
	issues := CheckCompliance(bare)
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	if issues[0].Type != "GST" || issues[0].Severity != "high" {
		t.Errorf("expected GST/high first, got %+v", issues[0])
	}

	recs := ComplianceRecommendations(bare)
	if len(recs) != 1 || recs[0].Title != "Complete GST Registration" {
		t.Fatalf("expected the single GST recommendation, got %+v", recs)
	}

	registered := &models.Company{ID: "c3", GSTNumber: "29X", PANNumber: "P", RegistrationNumber: "R"}
	if issues := CheckCompliance(registered); len(issues) != 0 {
		t.Errorf("fully registered company should have no issues, got %v", issues)
	}
}
