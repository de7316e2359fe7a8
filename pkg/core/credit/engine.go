// Package credit derives a credit assessment (rating, score, risk
// decomposition, loan terms) from computed financial metrics.
package credit

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sme_platform/pkg/models"
)

// Engine is a state-free assessor; one Assess call produces one
// immutable CreditAssessment.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Assess performs the full credit evaluation for a company against its
// latest metrics.
func (e *Engine) Assess(company *models.Company, m *models.FinancialMetrics) *models.CreditAssessment {
	cashFlowRisk := CashFlowRisk(m)
	debtRisk := DebtServicingRisk(m)
	concRisk := ConcentrationRisk(company)
	compRisk := ComplianceRisk(company)

	score := CreditScore(m.HealthScore, cashFlowRisk, debtRisk, concRisk, compRisk)

	return &models.CreditAssessment{
		ID:        uuid.New().String(),
		CompanyID: company.ID,
		MetricsID: m.ID,

		CreditRating: RatingForScore(score),
		CreditScore:  score,

		CashFlowRisk:      cashFlowRisk,
		DebtServicingRisk: debtRisk,
		ConcentrationRisk: concRisk,
		ComplianceRisk:    compRisk,

		RecommendedLoanAmount:   RecommendedLoan(company, score),
		RecommendedTenureMonths: RecommendedTenure(score),
		ProbabilityOfStress:     StressProbability(score, m),

		RiskFactors: RiskFactors(m, company),
		AssessedAt:  time.Now(),
	}
}

// present mirrors the scoring layer: zero-valued ratios read as missing.
func present(p *float64) bool {
	return p != nil && *p != 0
}

func clamp(risk int) int {
	if risk < 0 {
		return 0
	}
	if risk > 100 {
		return 100
	}
	return risk
}

// CashFlowRisk inverts cash flow stability (base 50 without data) and
// adjusts for the liquidity position.
func CashFlowRisk(m *models.FinancialMetrics) int {
	risk := 50.0
	if present(m.CashFlowStability) {
		risk = 100 - *m.CashFlowStability
	}
	if present(m.CurrentRatio) {
		if *m.CurrentRatio < 1.0 {
			risk += 20
		} else if *m.CurrentRatio > 2.0 {
			risk -= 20
		}
	}
	return clamp(int(risk))
}

// DebtServicingRisk tiers on interest coverage, then penalizes high
// leverage.
func DebtServicingRisk(m *models.FinancialMetrics) int {
	risk := 50
	if present(m.InterestCoverage) {
		switch ic := *m.InterestCoverage; {
		case ic >= 5:
			risk = 10
		case ic >= 3:
			risk = 30
		case ic >= 1.5:
			risk = 50
		default:
			risk = 80
		}
	}
	if present(m.DebtToEquity) {
		if *m.DebtToEquity > 3 {
			risk += 20
		} else if *m.DebtToEquity > 2 {
			risk += 10
		}
	}
	return clamp(risk)
}

// ConcentrationRisk is an industry proxy only; no real customer
// concentration data is consumed.
func ConcentrationRisk(company *models.Company) int {
	switch company.Industry {
	case models.IndustryManufacturing, models.IndustryRetail:
		return 30
	case models.IndustryServices:
		return 50
	}
	return 40
}

// ComplianceRisk starts low and grows with missing registrations.
func ComplianceRisk(company *models.Company) int {
	risk := 20
	if company.GSTNumber == "" {
		risk += 30
	}
	if company.PANNumber == "" {
		risk += 20
	}
	return clamp(risk)
}

// CreditScore blends the health score (60%) with the weighted average of
// inverted risks (40%). A zero health score takes the default midpoint.
func CreditScore(healthScore, cfRisk, debtRisk, concRisk, compRisk int) int {
	score := 50.0
	if healthScore != 0 {
		score = float64(healthScore)
	}

	riskAdjustment := float64(100-cfRisk)*0.3 +
		float64(100-debtRisk)*0.4 +
		float64(100-concRisk)*0.15 +
		float64(100-compRisk)*0.15

	final := score*0.6 + riskAdjustment*0.4
	return clamp(int(final))
}

// RatingForScore maps a credit score to its band; lower edges are
// inclusive.
func RatingForScore(score int) models.CreditRating {
	switch {
	case score >= 85:
		return models.RatingAAA
	case score >= 75:
		return models.RatingAA
	case score >= 65:
		return models.RatingA
	case score >= 55:
		return models.RatingBBB
	case score >= 45:
		return models.RatingBB
	case score >= 35:
		return models.RatingB
	}
	return models.RatingC
}

// RecommendedLoan sizes a loan at 25% of annual revenue scaled by the
// credit score. Unknown revenue yields no recommendation.
func RecommendedLoan(company *models.Company, score int) *float64 {
	if !present(company.AnnualRevenue) {
		return nil
	}
	base := *company.AnnualRevenue * 0.25

	multiplier := 0.25
	switch {
	case score >= 75:
		multiplier = 1.5
	case score >= 60:
		multiplier = 1.0
	case score >= 45:
		multiplier = 0.5
	}

	amount, _ := decimal.NewFromFloat(base * multiplier).Round(2).Float64()
	return &amount
}

// RecommendedTenure maps the credit score to a loan tenure in months.
func RecommendedTenure(score int) int {
	switch {
	case score >= 75:
		return 36
	case score >= 60:
		return 24
	case score >= 45:
		return 12
	}
	return 6
}

// StressProbability is the inverse of the credit score with a liquidity
// penalty, expressed as a 0-100 percentage with 2 decimals.
func StressProbability(score int, m *models.FinancialMetrics) float64 {
	prob := float64(100-score) / 100
	if present(m.CurrentRatio) && *m.CurrentRatio < 1.0 {
		prob += 0.2
	}
	if prob > 1.0 {
		prob = 1.0
	}
	p, _ := decimal.NewFromFloat(prob * 100).Round(2).Float64()
	return p
}

// RiskFactors lists triggered human-readable flags in a fixed order.
func RiskFactors(m *models.FinancialMetrics, company *models.Company) []string {
	factors := []string{}

	if present(m.CurrentRatio) && *m.CurrentRatio < 1.0 {
		factors = append(factors, "Low liquidity - current ratio below 1.0")
	}
	if present(m.DebtToEquity) && *m.DebtToEquity > 2.0 {
		factors = append(factors, "High leverage - debt to equity above 2.0")
	}
	if present(m.NetMargin) && *m.NetMargin < 5 {
		factors = append(factors, "Low profitability - net margin below 5%")
	}
	if present(m.ReceivablesDays) && *m.ReceivablesDays > 90 {
		factors = append(factors, "Slow collections - receivables over 90 days")
	}
	if company.GSTNumber == "" {
		factors = append(factors, "GST registration not provided")
	}

	return factors
}
