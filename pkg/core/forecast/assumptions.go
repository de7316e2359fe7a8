package forecast

import (
	"fmt"
	"strings"

	"sme_platform/pkg/models"
)

// Assumptions renders the templated narrative for one scenario. The
// output is a pure function of its inputs so regenerated forecasts
// carry identical text.
func Assumptions(scenario models.Scenario, revenueGrowth, expenseGrowth float64, industry models.Industry, language string) string {
	header := "Forecast Scenario"
	if language == "hi" {
		header = "पूर्वानुमान परिदृश्य"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n\n", header, strings.ToUpper(string(scenario)))
	b.WriteString("Key Assumptions:\n")
	fmt.Fprintf(&b, "- Revenue Growth Rate: %.1f%% annually\n", revenueGrowth*100)
	fmt.Fprintf(&b, "- Expense Growth Rate: %.1f%% annually\n", expenseGrowth*100)
	fmt.Fprintf(&b, "- Industry: %s\n", industry)
	b.WriteString("- Seasonality: Not factored (uniform monthly distribution)\n")
	b.WriteString("- External Factors: Stable economic conditions assumed\n\n")
	b.WriteString("Scenario Details:\n")

	switch scenario {
	case models.ScenarioBest:
		b.WriteString("- Strong market demand\n")
		b.WriteString("- Successful new product launches\n")
		b.WriteString("- Improved operational efficiency\n")
		b.WriteString("- Favorable market conditions")
	case models.ScenarioWorst:
		b.WriteString("- Market headwinds\n")
		b.WriteString("- Increased competition\n")
		b.WriteString("- Rising input costs\n")
		b.WriteString("- Potential operational challenges")
	default:
		b.WriteString("- Steady market conditions\n")
		b.WriteString("- Consistent operational performance\n")
		b.WriteString("- Normal competitive environment\n")
		b.WriteString("- No major disruptions")
	}

	return b.String()
}
