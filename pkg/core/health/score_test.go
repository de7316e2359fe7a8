package health

import (
	"testing"

	"sme_platform/pkg/models"
)

func TestHealthScoreAllAbsent(t *testing.T) {
	// Liquidity and profitability contribute 0 without data, efficiency
	// and solvency fall back to 50, cash flow contributes 0:
	// 0*0.2 + 0*0.3 + 50*0.2 + 50*0.2 + 0 = 20.
	score := HealthScore(&models.FinancialMetrics{}, nil)
	if score != 20 {
		t.Fatalf("expected default-weighted score 20, got %d", score)
	}
}

func TestHealthScoreBounds(t *testing.T) {
	m := &models.FinancialMetrics{
		CurrentRatio:      fp(5.0),
		NetMargin:         fp(50),
		ReceivablesDays:   fp(5),
		DebtToEquity:      fp(0.1),
		CashFlowStability: fp(100),
	}
	score := HealthScore(m, nil)
	if score < 0 || score > 100 {
		t.Fatalf("score out of range: %d", score)
	}
	if score != 100 {
		t.Errorf("expected perfect inputs to score 100, got %d", score)
	}

	worst := HealthScore(&models.FinancialMetrics{
		CurrentRatio:    fp(0.2),
		NetMargin:       fp(1),
		ReceivablesDays: fp(200),
		DebtToEquity:    fp(5),
	}, nil)
	if worst < 0 || worst > 100 {
		t.Fatalf("score out of range: %d", worst)
	}
}

func TestHealthScoreTieredExample(t *testing.T) {
	// current 1.8 -> 80, margin 12.3 -> 80, receivables 42 -> 70,
	// D/E 0.9 -> 80, stability 85:
	// 16 + 24 + 14 + 16 + 8.5 = 78.5 -> 78.
	m := &models.FinancialMetrics{
		CurrentRatio:      fp(1.8),
		NetMargin:         fp(12.3),
		ReceivablesDays:   fp(42),
		DebtToEquity:      fp(0.9),
		CashFlowStability: fp(85),
	}
	if score := HealthScore(m, nil); score != 78 {
		t.Errorf("expected 78, got %d", score)
	}
}

func TestProfitabilityBenchmarkNormalization(t *testing.T) {
	m := &models.FinancialMetrics{NetMargin: fp(6)}
	bench := &models.IndustryBenchmark{Industry: models.IndustryRetail, AvgNetMargin: 12}

	// Below benchmark: scaled to 6/12*100 = 50 -> 50*0.3 + 50*0.2 + 50*0.2 = 35.
	if score := HealthScore(m, bench); score != 35 {
		t.Errorf("expected benchmark-scaled score 35, got %d", score)
	}

	// At or above benchmark: full component.
	over := &models.FinancialMetrics{NetMargin: fp(12)}
	if score := HealthScore(over, bench); score != 50 {
		t.Errorf("expected full profitability score 50, got %d", score)
	}

	// A zero benchmark margin means "unknown" and falls back to tiers:
	// margin 6 -> 60 -> 18 + 20 = 38.
	noMargin := &models.IndustryBenchmark{Industry: models.IndustryRetail}
	if score := HealthScore(m, noMargin); score != 38 {
		t.Errorf("expected tiered score 38, got %d", score)
	}
}

func TestAsymmetricDefaults(t *testing.T) {
	// Only solvency data present: liquidity/profitability stay 0 while
	// efficiency defaults to 50.
	m := &models.FinancialMetrics{DebtToEquity: fp(0.4)}
	// 0 + 0 + 50*0.2 + 100*0.2 + 0 = 30.
	if score := HealthScore(m, nil); score != 30 {
		t.Errorf("expected 30, got %d", score)
	}

	// Only liquidity present: others take their own defaults.
	liq := &models.FinancialMetrics{CurrentRatio: fp(2.5)}
	// 100*0.2 + 0 + 50*0.2 + 50*0.2 = 40.
	if score := HealthScore(liq, nil); score != 40 {
		t.Errorf("expected 40, got %d", score)
	}
}
