package advise

import "sme_platform/pkg/models"

// WorkingCapitalRecommendations targets the cash conversion cycle and
// liquidity position. A nil metrics record yields an empty result.
func WorkingCapitalRecommendations(company *models.Company, m *models.FinancialMetrics) []models.Recommendation {
	recs := []models.Recommendation{}
	if m == nil {
		return recs
	}

	if present(m.CashConversionCycle) && *m.CashConversionCycle > 60 {
		recs = append(recs, newRec(company,
			models.CategoryWorkingCapital, models.PriorityHigh,
			"Reduce Cash Conversion Cycle",
			"Cash conversion cycle is "+fmtNum(*m.CashConversionCycle)+" days. Focus on faster collections, optimized inventory, and extended payables to free up working capital.",
			revenueFraction(company, 0.05),
			"Medium - 3-4 months"))
	}

	if present(m.ReceivablesDays) && *m.ReceivablesDays > 45 {
		recs = append(recs, newRec(company,
			models.CategoryWorkingCapital, models.PriorityHigh,
			"Accelerate Receivables Collection",
			"Receivables are outstanding for "+fmtNum(*m.ReceivablesDays)+" days. Implement automated reminders, offer early payment incentives, or use invoice discounting services.",
			revenueFraction(company, 0.03),
			"Low - 1-2 months"))
	}

	if present(m.PayablesDays) && *m.PayablesDays < 30 {
		recs = append(recs, newRec(company,
			models.CategoryWorkingCapital, models.PriorityMedium,
			"Optimize Payment Terms with Suppliers",
			"Current payables period is "+fmtNum(*m.PayablesDays)+" days. Negotiate extended payment terms with suppliers to improve cash flow without damaging relationships.",
			revenueFraction(company, 0.02),
			"Low - 1-2 months"))
	}

	if present(m.CurrentRatio) && *m.CurrentRatio < 1.2 {
		recs = append(recs, newRec(company,
			models.CategoryWorkingCapital, models.PriorityHigh,
			"Improve Liquidity Position",
			"Current ratio is "+fmtNum(*m.CurrentRatio)+", indicating tight liquidity. Consider securing a working capital line of credit, reducing short-term debt, or converting assets to cash.",
			nil,
			"Medium - 2-3 months"))
	}

	// Invoice discounting only makes sense above a revenue floor.
	if present(m.ReceivablesDays) && *m.ReceivablesDays > 60 &&
		company.AnnualRevenue != nil && *company.AnnualRevenue > 5000000 {
		recs = append(recs, newRec(company,
			models.CategoryWorkingCapital, models.PriorityMedium,
			"Consider Invoice Discounting",
			"With receivables of "+fmtNum(*m.ReceivablesDays)+" days and significant revenue, invoice discounting could unlock immediate cash flow. Typical cost: 12-18% annually.",
			revenueFraction(company, 0.04),
			"Low - 2-4 weeks"))
	}

	return recs
}
