package narrative

import (
	"fmt"
	"strings"

	"sme_platform/pkg/models"
)

// metricPresent mirrors the scoring convention that a zero ratio reads
// as missing.
func metricPresent(p *float64) bool {
	return p != nil && *p != 0
}

// simpleNarrative is the deterministic template fallback. Same inputs
// always produce the same text.
func simpleNarrative(company *models.Company, metrics *models.FinancialMetrics, language string) string {
	if language == "hi" {
		return hindiNarrative(company, metrics)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Financial Health Summary for %s\n\n", company.Name)

	if metrics.HealthScore != 0 {
		switch {
		case metrics.HealthScore >= 75:
			fmt.Fprintf(&sb, "Your business is in excellent financial health with a score of %d/100. ", metrics.HealthScore)
		case metrics.HealthScore >= 60:
			fmt.Fprintf(&sb, "Your business is in good financial health with a score of %d/100. ", metrics.HealthScore)
		case metrics.HealthScore >= 45:
			fmt.Fprintf(&sb, "Your business has moderate financial health with a score of %d/100. ", metrics.HealthScore)
		default:
			fmt.Fprintf(&sb, "Your business needs attention with a financial health score of %d/100. ", metrics.HealthScore)
		}
	}

	if metricPresent(metrics.CurrentRatio) {
		switch {
		case *metrics.CurrentRatio >= 1.5:
			sb.WriteString("You have strong liquidity to meet short-term obligations. ")
		case *metrics.CurrentRatio >= 1.0:
			sb.WriteString("Your liquidity is adequate but could be improved. ")
		default:
			sb.WriteString("You may face challenges meeting short-term obligations. ")
		}
	}

	if metricPresent(metrics.NetMargin) {
		fmt.Fprintf(&sb, "Your net profit margin is %g%%, ", *metrics.NetMargin)
		switch {
		case *metrics.NetMargin >= 15:
			sb.WriteString("which is excellent. ")
		case *metrics.NetMargin >= 10:
			sb.WriteString("which is good. ")
		default:
			sb.WriteString("which has room for improvement. ")
		}
	}

	return sb.String()
}

func hindiNarrative(company *models.Company, metrics *models.FinancialMetrics) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s की वित्तीय स्थिति\n\n", company.Name)

	if metrics.HealthScore != 0 {
		switch {
		case metrics.HealthScore >= 75:
			fmt.Fprintf(&sb, "आपका व्यवसाय उत्कृष्ट वित्तीय स्वास्थ्य में है, स्कोर %d/100 है। ", metrics.HealthScore)
		case metrics.HealthScore >= 60:
			fmt.Fprintf(&sb, "आपका व्यवसाय अच्छी वित्तीय स्थिति में है, स्कोर %d/100 है। ", metrics.HealthScore)
		default:
			fmt.Fprintf(&sb, "आपके व्यवसाय को ध्यान देने की आवश्यकता है, स्कोर %d/100 है। ", metrics.HealthScore)
		}
	}

	if metricPresent(metrics.NetMargin) {
		fmt.Fprintf(&sb, "आपका शुद्ध लाभ मार्जिन %g%% है। ", *metrics.NetMargin)
	}

	return sb.String()
}
