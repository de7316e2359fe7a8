package advise

import "sme_platform/pkg/models"

// CostRecommendations analyzes expense-side ratios and proposes
// cost-saving actions. A nil metrics record yields an empty result.
func CostRecommendations(company *models.Company, m *models.FinancialMetrics) []models.Recommendation {
	recs := []models.Recommendation{}
	if m == nil {
		return recs
	}

	if present(m.GrossMargin) && *m.GrossMargin < 30 {
		recs = append(recs, newRec(company,
			models.CategoryCostOptimization, models.PriorityHigh,
			"Improve Gross Margin",
			"Current gross margin is "+fmtNum(*m.GrossMargin)+"%, which is below industry standards. Consider negotiating better supplier terms, reducing production costs, or optimizing pricing strategy.",
			revenueFraction(company, 0.05),
			"Medium - 3-6 months"))
	}

	if present(m.ReceivablesDays) && *m.ReceivablesDays > 60 {
		recs = append(recs, newRec(company,
			models.CategoryCostOptimization, models.PriorityHigh,
			"Reduce Receivables Collection Period",
			"Average collection period is "+fmtNum(*m.ReceivablesDays)+" days. Implement stricter credit policies, offer early payment discounts, or consider invoice factoring to improve cash flow.",
			revenueFraction(company, 0.03),
			"Low - 1-2 months"))
	}

	if present(m.InventoryTurnover) && *m.InventoryTurnover < 4 {
		recs = append(recs, newRec(company,
			models.CategoryCostOptimization, models.PriorityMedium,
			"Optimize Inventory Management",
			"Inventory turnover is "+fmtNum(*m.InventoryTurnover)+"x per year, indicating slow-moving stock. Implement just-in-time inventory, reduce obsolete stock, and improve demand forecasting.",
			revenueFraction(company, 0.02),
			"Medium - 2-4 months"))
	}

	if present(m.DebtToEquity) && *m.DebtToEquity > 1.5 {
		recs = append(recs, newRec(company,
			models.CategoryCostOptimization, models.PriorityHigh,
			"Optimize Debt Structure",
			"Debt-to-equity ratio is "+fmtNum(*m.DebtToEquity)+", indicating high leverage. Consider refinancing high-interest debt, extending payment terms, or raising equity to reduce interest burden.",
			revenueFraction(company, 0.04),
			"High - 6-12 months"))
	}

	if present(m.NetMargin) && *m.NetMargin < 10 {
		recs = append(recs, newRec(company,
			models.CategoryCostOptimization, models.PriorityMedium,
			"Improve Net Profit Margin",
			"Net margin is "+fmtNum(*m.NetMargin)+"%. Review operating expenses, eliminate non-essential costs, automate processes, and focus on high-margin products/services.",
			revenueFraction(company, 0.06),
			"Medium - 3-6 months"))
	}

	return recs
}
