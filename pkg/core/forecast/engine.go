// Package forecast projects monthly revenue, expenses and cash flow
// for best/base/worst growth scenarios from historical statements.
package forecast

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sme_platform/pkg/models"
)

// Historical holds the revenue/expense series pulled from recent
// statements, newest first, plus the compound growth rate in percent.
type Historical struct {
	Revenue    []float64
	Expenses   []float64
	GrowthRate float64
}

// Engine generates scenario forecasts. now is injectable so projections
// are reproducible in tests.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineAt pins the projection start date.
func NewEngineAt(now time.Time) *Engine {
	return &Engine{now: func() time.Time { return now }}
}

// Generate produces one forecast per scenario from up to 12 recent
// processed statements (ordered newest first).
func (e *Engine) Generate(company *models.Company, history []models.FinancialData, months int, language string) []models.Forecast {
	hist := ExtractHistorical(history)

	forecasts := make([]models.Forecast, 0, 3)
	for _, scenario := range []models.Scenario{models.ScenarioBest, models.ScenarioBase, models.ScenarioWorst} {
		forecasts = append(forecasts, e.scenarioForecast(company, hist, months, scenario, language))
	}
	return forecasts
}

// ExtractHistorical pulls revenue and aggregate expenses from each
// statement bundle and computes the compound growth rate from the
// newest and oldest available revenue points.
func ExtractHistorical(history []models.FinancialData) Historical {
	hist := Historical{}

	for _, data := range history {
		if data.Raw == nil {
			continue
		}
		if rev := extractRevenue(data.Raw.IncomeStatement); rev != nil {
			hist.Revenue = append(hist.Revenue, *rev)
		}
		if exp := extractExpenses(data.Raw.IncomeStatement); exp != nil {
			hist.Expenses = append(hist.Expenses, *exp)
		}
	}

	if len(hist.Revenue) >= 2 {
		recent := hist.Revenue[0]
		oldest := hist.Revenue[len(hist.Revenue)-1]
		periods := float64(len(hist.Revenue))
		hist.GrowthRate = (math.Pow(recent/oldest, 1/periods) - 1) * 100
	}

	return hist
}

// ScenarioRates returns the annual revenue and expense growth rates (as
// fractions) for a scenario, given the historical rate in percent.
func ScenarioRates(scenario models.Scenario, growthRate float64) (revenueGrowth, expenseGrowth float64) {
	switch scenario {
	case models.ScenarioBest:
		return (growthRate + 5) / 100, (growthRate - 2) / 100
	case models.ScenarioWorst:
		return (growthRate - 5) / 100, (growthRate + 3) / 100
	}
	return growthRate / 100, growthRate / 100
}

func (e *Engine) scenarioForecast(company *models.Company, hist Historical, months int, scenario models.Scenario, language string) models.Forecast {
	revenueGrowth, expenseGrowth := ScenarioRates(scenario, hist.GrowthRate)

	baseRevenue := 1000000.0
	if len(hist.Revenue) > 0 {
		baseRevenue = hist.Revenue[0]
	} else if company.AnnualRevenue != nil {
		baseRevenue = *company.AnnualRevenue
	}
	baseExpenses := baseRevenue * 0.7
	if len(hist.Expenses) > 0 {
		baseExpenses = hist.Expenses[0]
	}

	monthlyRevenue := baseRevenue / 12
	monthlyExpenses := baseExpenses / 12

	revenue := make([]models.MonthValue, 0, months)
	expenses := make([]models.MonthValue, 0, months)
	cashFlow := make([]models.MonthValue, 0, months)

	start := e.now()
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")

		projRevenue := monthlyRevenue * math.Pow(1+revenueGrowth/12, float64(i))
		projExpenses := monthlyExpenses * math.Pow(1+expenseGrowth/12, float64(i))

		revenue = append(revenue, models.MonthValue{Month: month, Value: round2(projRevenue)})
		expenses = append(expenses, models.MonthValue{Month: month, Value: round2(projExpenses)})
		cashFlow = append(cashFlow, models.MonthValue{Month: month, Value: round2(projRevenue - projExpenses)})
	}

	return models.Forecast{
		ID:             uuid.New().String(),
		CompanyID:      company.ID,
		Scenario:       scenario,
		ForecastMonths: months,
		Revenue:        revenue,
		Expenses:       expenses,
		CashFlow:       cashFlow,
		Assumptions:    Assumptions(scenario, revenueGrowth, expenseGrowth, company.Industry, language),
		CreatedAt:      start,
	}
}

func round2(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}

// extractRevenue picks one revenue line per statement: "revenue" labels
// beat "sales" labels beat "turnover" labels, and ties within a keyword
// resolve in sorted label order, so the same statement always seeds the
// same forecast.
func extractRevenue(incomeStatement map[string]interface{}) *float64 {
	labels := sortedLabels(incomeStatement)
	for _, keyword := range []string{"revenue", "sales", "turnover"} {
		for _, label := range labels {
			if !strings.Contains(strings.ToLower(label), keyword) {
				continue
			}
			if v, ok := toFloat(incomeStatement[label]); ok {
				return &v
			}
		}
	}
	return nil
}

func extractExpenses(incomeStatement map[string]interface{}) *float64 {
	total := 0.0
	for _, label := range sortedLabels(incomeStatement) {
		lower := strings.ToLower(label)
		if strings.Contains(lower, "expense") || strings.Contains(lower, "cost") || strings.Contains(lower, "expenditure") {
			if v, ok := toFloat(incomeStatement[label]); ok {
				total += v
			}
		}
	}
	if total > 0 {
		return &total
	}
	return nil
}

func sortedLabels(m map[string]interface{}) []string {
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
