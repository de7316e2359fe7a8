package health

import (
	"time"

	"github.com/google/uuid"

	"sme_platform/pkg/core/extract"
	"sme_platform/pkg/models"
)

// Compute derives the full metrics record for one statement period.
// The health score is set afterwards from the computed ratios; every
// missing input degrades a ratio to nil instead of failing the run.
func Compute(company *models.Company, data *models.FinancialData, v *extract.Values, bench *models.IndustryBenchmark) *models.FinancialMetrics {
	m := &models.FinancialMetrics{
		ID:              uuid.New().String(),
		CompanyID:       company.ID,
		FinancialDataID: data.ID,

		CurrentRatio:      CurrentRatio(v),
		QuickRatio:        QuickRatio(v),
		GrossMargin:       GrossMargin(v),
		NetMargin:         NetMargin(v),
		ROA:               ROA(v),
		ROE:               ROE(v),
		InventoryTurnover: InventoryTurnover(v),
		ReceivablesDays:   ReceivablesDays(v),
		PayablesDays:      PayablesDays(v),
		DebtToEquity:      DebtToEquity(v),
		InterestCoverage:  InterestCoverage(v),

		CashFlowStability:   CashFlowStability(v),
		CashConversionCycle: CashConversionCycle(v),

		CalculatedAt: time.Now(),
	}
	m.HealthScore = HealthScore(m, bench)
	return m
}
