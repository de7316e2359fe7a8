// Package report assembles a Markdown financial health report and
// renders it to HTML for download.
package report

import (
	"fmt"
	"sort"
	"strings"

	"sme_platform/pkg/models"
)

// Input bundles everything a report can include. Metrics is required;
// the other sections are skipped when nil or empty.
type Input struct {
	Company         *models.Company
	Metrics         *models.FinancialMetrics
	Assessment      *models.CreditAssessment
	Recommendations []models.Recommendation
	Narrative       string
}

// priorityRank orders recommendations for the report. Unknown
// priorities sink to the bottom.
var priorityRank = map[models.Priority]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

// topRecommendations returns up to n recommendations ordered by
// priority. The sort is stable so same-priority items keep their
// generation order.
func topRecommendations(recs []models.Recommendation, n int) []models.Recommendation {
	sorted := make([]models.Recommendation, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, iok := priorityRank[sorted[i].Priority]
		rj, jok := priorityRank[sorted[j].Priority]
		if !iok {
			ri = len(priorityRank)
		}
		if !jok {
			rj = len(priorityRank)
		}
		return ri < rj
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// BuildMarkdown renders the report as Markdown.
func BuildMarkdown(in Input) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Financial Health Report: %s\n\n", in.Company.Name)
	fmt.Fprintf(&sb, "**Industry:** %s\n\n", in.Company.Industry)

	if in.Narrative != "" {
		sb.WriteString("## Summary\n\n")
		sb.WriteString(in.Narrative)
		sb.WriteString("\n\n")
	}

	sb.WriteString("## Key Metrics\n\n")
	fmt.Fprintf(&sb, "**Health Score:** %d/100\n\n", in.Metrics.HealthScore)
	sb.WriteString("| Metric | Value |\n|---|---|\n")
	writeMetricRow(&sb, "Current Ratio", in.Metrics.CurrentRatio, "")
	writeMetricRow(&sb, "Quick Ratio", in.Metrics.QuickRatio, "")
	writeMetricRow(&sb, "Gross Margin", in.Metrics.GrossMargin, "%")
	writeMetricRow(&sb, "Net Margin", in.Metrics.NetMargin, "%")
	writeMetricRow(&sb, "Return on Assets", in.Metrics.ROA, "%")
	writeMetricRow(&sb, "Return on Equity", in.Metrics.ROE, "%")
	writeMetricRow(&sb, "Inventory Turnover", in.Metrics.InventoryTurnover, "")
	writeMetricRow(&sb, "Receivables Days", in.Metrics.ReceivablesDays, "")
	writeMetricRow(&sb, "Payables Days", in.Metrics.PayablesDays, "")
	writeMetricRow(&sb, "Debt to Equity", in.Metrics.DebtToEquity, "")
	writeMetricRow(&sb, "Interest Coverage", in.Metrics.InterestCoverage, "")
	sb.WriteString("\n")

	if in.Assessment != nil {
		sb.WriteString("## Credit Assessment\n\n")
		fmt.Fprintf(&sb, "**Rating:** %s (score %d/100)\n\n", in.Assessment.CreditRating, in.Assessment.CreditScore)
		if in.Assessment.RecommendedLoanAmount != nil {
			fmt.Fprintf(&sb, "**Recommended Loan Amount:** ₹%.2f\n\n", *in.Assessment.RecommendedLoanAmount)
		}
		fmt.Fprintf(&sb, "**Recommended Tenure:** %d months\n\n", in.Assessment.RecommendedTenureMonths)
		fmt.Fprintf(&sb, "**Probability of Financial Stress:** %.1f%%\n\n", in.Assessment.ProbabilityOfStress)
		if len(in.Assessment.RiskFactors) > 0 {
			sb.WriteString("**Risk Factors:**\n\n")
			for _, rf := range in.Assessment.RiskFactors {
				fmt.Fprintf(&sb, "- %s\n", rf)
			}
			sb.WriteString("\n")
		}
	}

	if len(in.Recommendations) > 0 {
		sb.WriteString("## Top Recommendations\n\n")
		for i, rec := range topRecommendations(in.Recommendations, 5) {
			fmt.Fprintf(&sb, "%d. **%s** (%s priority): %s\n", i+1, rec.Title, rec.Priority, rec.Description)
			if rec.EstimatedImpact != nil {
				fmt.Fprintf(&sb, "   Estimated impact: ₹%.2f\n", *rec.EstimatedImpact)
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeMetricRow(sb *strings.Builder, label string, value *float64, suffix string) {
	if value == nil {
		return
	}
	fmt.Fprintf(sb, "| %s | %g%s |\n", label, *value, suffix)
}
