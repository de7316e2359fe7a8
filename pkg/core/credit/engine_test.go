package credit

import (
	"testing"

	"sme_platform/pkg/models"
)

func fp(x float64) *float64 { return &x }

func TestRatingBandLowerEdgesInclusive(t *testing.T) {
	cases := []struct {
		score int
		want  models.CreditRating
	}{
		{85, models.RatingAAA},
		{84, models.RatingAA},
		{75, models.RatingAA},
		{74, models.RatingA},
		{65, models.RatingA},
		{55, models.RatingBBB},
		{45, models.RatingBB},
		{44, models.RatingB},
		{35, models.RatingB},
		{34, models.RatingC},
		{0, models.RatingC},
	}
	for _, tc := range cases {
		if got := RatingForScore(tc.score); got != tc.want {
			t.Errorf("score %d: expected %s, got %s", tc.score, tc.want, got)
		}
	}
}

func TestCreditScoreMonotoneInRisks(t *testing.T) {
	base := CreditScore(70, 40, 40, 40, 40)
	for name, bumped := range map[string]int{
		"cash flow":     CreditScore(70, 60, 40, 40, 40),
		"debt":          CreditScore(70, 40, 60, 40, 40),
		"concentration": CreditScore(70, 40, 40, 60, 40),
		"compliance":    CreditScore(70, 40, 40, 40, 60),
	} {
		if bumped > base {
			t.Errorf("raising %s risk must not raise the credit score (%d > %d)", name, bumped, base)
		}
	}
}

func TestCreditScoreDefaultsHealthToMidpoint(t *testing.T) {
	withHealth := CreditScore(50, 40, 40, 40, 40)
	noHealth := CreditScore(0, 40, 40, 40, 40)
	if withHealth != noHealth {
		t.Errorf("absent health score should default to 50: %d vs %d", noHealth, withHealth)
	}
}

func TestCashFlowRiskAdjustments(t *testing.T) {
	// stability 80 -> base risk 20; current ratio 0.8 adds 20.
	tight := &models.FinancialMetrics{CashFlowStability: fp(80), CurrentRatio: fp(0.8)}
	if got := CashFlowRisk(tight); got != 40 {
		t.Errorf("expected 40, got %d", got)
	}
	// current ratio 2.5 subtracts 20 and clamps at 0.
	comfy := &models.FinancialMetrics{CashFlowStability: fp(90), CurrentRatio: fp(2.5)}
	if got := CashFlowRisk(comfy); got != 0 {
		t.Errorf("expected clamp to 0, got %d", got)
	}
	// No data at all: base 50.
	if got := CashFlowRisk(&models.FinancialMetrics{}); got != 50 {
		t.Errorf("expected default 50, got %d", got)
	}
}

func TestDebtServicingRiskTiersAndLeverage(t *testing.T) {
	m := &models.FinancialMetrics{InterestCoverage: fp(6), DebtToEquity: fp(3.5)}
	if got := DebtServicingRisk(m); got != 30 { // 10 + 20
		t.Errorf("expected 30, got %d", got)
	}
	weak := &models.FinancialMetrics{InterestCoverage: fp(1.0), DebtToEquity: fp(2.5)}
	if got := DebtServicingRisk(weak); got != 90 { // 80 + 10
		t.Errorf("expected 90, got %d", got)
	}
	if got := DebtServicingRisk(&models.FinancialMetrics{}); got != 50 {
		t.Errorf("expected default 50, got %d", got)
	}
}

func TestComplianceAndConcentration(t *testing.T) {
	full := &models.Company{Industry: models.IndustryManufacturing, GSTNumber: "29X", PANNumber: "P1"}
	if got := ComplianceRisk(full); got != 20 {
		t.Errorf("expected base 20, got %d", got)
	}
	bare := &models.Company{Industry: models.IndustryServices}
	if got := ComplianceRisk(bare); got != 70 { // 20 + 30 + 20
		t.Errorf("expected 70, got %d", got)
	}
	if got := ConcentrationRisk(full); got != 30 {
		t.Errorf("manufacturing: expected 30, got %d", got)
	}
	if got := ConcentrationRisk(bare); got != 50 {
		t.Errorf("services: expected 50, got %d", got)
	}
	if got := ConcentrationRisk(&models.Company{Industry: models.IndustryLogistics}); got != 40 {
		t.Errorf("default: expected 40, got %d", got)
	}
}

func TestRecommendedLoanAndTenure(t *testing.T) {
	rev := 50000000.0
	company := &models.Company{AnnualRevenue: &rev}

	loan := RecommendedLoan(company, 80)
	if loan == nil || *loan != 18750000.0 { // 0.25 * 50M * 1.5
		t.Errorf("expected 18750000, got %v", loan)
	}
	if loan := RecommendedLoan(&models.Company{}, 80); loan != nil {
		t.Error("unknown revenue must yield no loan recommendation")
	}
	zero := 0.0
	if loan := RecommendedLoan(&models.Company{AnnualRevenue: &zero}, 80); loan != nil {
		t.Error("zero revenue reads as missing and must yield no loan recommendation")
	}

	for score, months := range map[int]int{80: 36, 60: 24, 45: 12, 30: 6} {
		if got := RecommendedTenure(score); got != months {
			t.Errorf("score %d: expected %d months, got %d", score, months, got)
		}
	}
}

func TestStressProbability(t *testing.T) {
	if got := StressProbability(70, &models.FinancialMetrics{}); got != 30.0 {
		t.Errorf("expected 30.0, got %v", got)
	}
	// Liquidity penalty, capped at 100.
	m := &models.FinancialMetrics{CurrentRatio: fp(0.8)}
	if got := StressProbability(10, m); got != 100.0 {
		t.Errorf("expected cap at 100, got %v", got)
	}
	if got := StressProbability(70, m); got != 50.0 {
		t.Errorf("expected 50.0, got %v", got)
	}
}

func TestRiskFactorsOrderAndGST(t *testing.T) {
	m := &models.FinancialMetrics{
		CurrentRatio:    fp(0.7),
		DebtToEquity:    fp(2.5),
		NetMargin:       fp(3),
		ReceivablesDays: fp(120),
	}
	factors := RiskFactors(m, &models.Company{})
	want := []string{
		"Low liquidity - current ratio below 1.0",
		"High leverage - debt to equity above 2.0",
		"Low profitability - net margin below 5%",
		"Slow collections - receivables over 90 days",
		"GST registration not provided",
	}
	if len(factors) != len(want) {
		t.Fatalf("expected %d factors, got %d: %v", len(want), len(factors), factors)
	}
	for i := range want {
		if factors[i] != want[i] {
			t.Errorf("factor %d: expected %q, got %q", i, want[i], factors[i])
		}
	}
}

func TestAssessEndToEnd(t *testing.T) {
	// Healthy company per seed data: health 82, GST present.
	rev := 50000000.0
	company := &models.Company{
		ID: "c1", Industry: models.IndustryManufacturing,
		GSTNumber: "29ABCDE1234F1Z5", PANNumber: "ABCDE1234F",
		AnnualRevenue: &rev,
	}
	m := &models.FinancialMetrics{
		ID:                "m1",
		CurrentRatio:      fp(1.8),
		NetMargin:         fp(12.3),
		DebtToEquity:      fp(0.9),
		ReceivablesDays:   fp(42),
		InterestCoverage:  fp(5.2),
		CashFlowStability: fp(85),
		HealthScore:       82,
	}

	a := NewEngine().Assess(company, m)

	if a.ComplianceRisk != 20 {
		t.Errorf("expected compliance risk 20, got %d", a.ComplianceRisk)
	}
	for _, f := range a.RiskFactors {
		if f == "GST registration not provided" {
			t.Error("GST present: missing-GST factor must not fire")
		}
	}
	if a.CreditRating != models.RatingAA && a.CreditRating != models.RatingA {
		t.Errorf("expected rating in {A, AA}, got %s", a.CreditRating)
	}
	if a.CreditScore < 0 || a.CreditScore > 100 {
		t.Errorf("credit score out of range: %d", a.CreditScore)
	}
	if a.RecommendedLoanAmount == nil {
		t.Error("expected a loan recommendation with known revenue")
	}
}
