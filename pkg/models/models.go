// Package models defines the persistent records of the SME financial
// health platform: company profiles, uploaded statements, computed
// metrics, credit assessments, recommendations and forecasts.
package models

import "time"

// Industry classifies a company for benchmarking and risk defaults.
type Industry string

const (
	IndustryManufacturing Industry = "manufacturing"
	IndustryRetail        Industry = "retail"
	IndustryAgriculture   Industry = "agriculture"
	IndustryServices      Industry = "services"
	IndustryLogistics     Industry = "logistics"
	IndustryEcommerce     Industry = "ecommerce"
)

// Company is a business profile with registration details.
type Company struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Industry           Industry  `json:"industry"`
	RegistrationNumber string    `json:"registration_number,omitempty"`
	GSTNumber          string    `json:"gst_number,omitempty"`
	PANNumber          string    `json:"pan_number,omitempty"`
	AnnualRevenue      *float64  `json:"annual_revenue,omitempty"`
	EmployeeCount      int       `json:"employee_count,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// StatementBundle holds the three normalized statement sections as
// free-text label -> value mappings. Values are kept as interface{} so
// imperfect uploads (string amounts, stray text) survive the round-trip
// to storage; the extractor coerces and skips what it cannot read.
type StatementBundle struct {
	BalanceSheet    map[string]interface{} `json:"balance_sheet"`
	IncomeStatement map[string]interface{} `json:"income_statement"`
	CashFlow        map[string]interface{} `json:"cash_flow"`
}

// IsEmpty reports whether no section carries any line item.
func (b *StatementBundle) IsEmpty() bool {
	if b == nil {
		return true
	}
	return len(b.BalanceSheet) == 0 && len(b.IncomeStatement) == 0 && len(b.CashFlow) == 0
}

// FileType identifies the format of an uploaded statement file.
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
	FileTypeHTML FileType = "html"
)

// FinancialData is one uploaded statement period for a company.
type FinancialData struct {
	ID          string           `json:"id"`
	CompanyID   string           `json:"company_id"`
	FileType    FileType         `json:"file_type"`
	PeriodStart time.Time        `json:"period_start"`
	PeriodEnd   time.Time        `json:"period_end"`
	Raw         *StatementBundle `json:"raw_data,omitempty"`
	Processed   bool             `json:"processed"`
	UploadedAt  time.Time        `json:"uploaded_at"`
}

// FinancialMetrics holds the computed ratios for one statement period.
// Ratio fields are nil when their inputs were absent or a guard failed;
// nil means "unknown", never zero.
type FinancialMetrics struct {
	ID              string `json:"id"`
	CompanyID       string `json:"company_id"`
	FinancialDataID string `json:"financial_data_id"`

	CurrentRatio *float64 `json:"current_ratio,omitempty"`
	QuickRatio   *float64 `json:"quick_ratio,omitempty"`

	GrossMargin *float64 `json:"gross_margin,omitempty"`
	NetMargin   *float64 `json:"net_margin,omitempty"`
	ROA         *float64 `json:"roa,omitempty"`
	ROE         *float64 `json:"roe,omitempty"`

	InventoryTurnover *float64 `json:"inventory_turnover,omitempty"`
	ReceivablesDays   *float64 `json:"receivables_days,omitempty"`
	PayablesDays      *float64 `json:"payables_days,omitempty"`

	DebtToEquity     *float64 `json:"debt_to_equity,omitempty"`
	InterestCoverage *float64 `json:"interest_coverage,omitempty"`

	CashFlowStability   *float64 `json:"cash_flow_stability,omitempty"`
	CashConversionCycle *float64 `json:"cash_conversion_cycle,omitempty"`

	HealthScore  int       `json:"health_score"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// CreditRating is the letter band derived from the credit score.
type CreditRating string

const (
	RatingAAA CreditRating = "AAA"
	RatingAA  CreditRating = "AA"
	RatingA   CreditRating = "A"
	RatingBBB CreditRating = "BBB"
	RatingBB  CreditRating = "BB"
	RatingB   CreditRating = "B"
	RatingC   CreditRating = "C"
)

// CreditAssessment is the result of one credit risk evaluation.
// Immutable after creation.
type CreditAssessment struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	MetricsID string `json:"metrics_id"`

	CreditRating CreditRating `json:"credit_rating"`
	CreditScore  int          `json:"credit_score"`

	CashFlowRisk      int `json:"cash_flow_risk"`
	DebtServicingRisk int `json:"debt_servicing_risk"`
	ConcentrationRisk int `json:"concentration_risk"`
	ComplianceRisk    int `json:"compliance_risk"`

	RecommendedLoanAmount   *float64 `json:"recommended_loan_amount,omitempty"`
	RecommendedTenureMonths int      `json:"recommended_tenure_months"`
	ProbabilityOfStress     float64  `json:"probability_of_stress"`

	RiskFactors []string  `json:"risk_factors"`
	AssessedAt  time.Time `json:"assessed_at"`
}

// RecommendationCategory groups advisory output by generator.
type RecommendationCategory string

const (
	CategoryCostOptimization RecommendationCategory = "cost_optimization"
	CategoryWorkingCapital   RecommendationCategory = "working_capital"
	CategoryFinancialProduct RecommendationCategory = "financial_product"
	CategoryCompliance       RecommendationCategory = "compliance"
	CategoryGeneral          RecommendationCategory = "general"
)

// Priority orders recommendations for reporting.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is a single advisory item produced by a rule engine.
type Recommendation struct {
	ID                   string                 `json:"id"`
	CompanyID            string                 `json:"company_id"`
	Category             RecommendationCategory `json:"category"`
	Priority             Priority               `json:"priority"`
	Title                string                 `json:"title"`
	Description          string                 `json:"description"`
	EstimatedImpact      *float64               `json:"estimated_impact,omitempty"`
	ImplementationEffort string                 `json:"implementation_effort,omitempty"`
	Language             string                 `json:"language"`
	CreatedAt            time.Time              `json:"created_at"`
}

// Scenario names a forecast growth assumption set.
type Scenario string

const (
	ScenarioBest  Scenario = "best"
	ScenarioBase  Scenario = "base"
	ScenarioWorst Scenario = "worst"
)

// MonthValue is one point of a projected monthly series.
type MonthValue struct {
	Month string  `json:"month"` // YYYY-MM
	Value float64 `json:"value"`
}

// Forecast holds the projected series for one company and scenario.
type Forecast struct {
	ID             string       `json:"id"`
	CompanyID      string       `json:"company_id"`
	Scenario       Scenario     `json:"scenario"`
	ForecastMonths int          `json:"forecast_months"`
	Revenue        []MonthValue `json:"revenue_forecast"`
	Expenses       []MonthValue `json:"expense_forecast"`
	CashFlow       []MonthValue `json:"cash_flow_forecast"`
	Assumptions    string       `json:"assumptions"`
	CreatedAt      time.Time    `json:"created_at"`
}

// IndustryBenchmark holds per-industry reference averages. A zero field
// means the average is not known for that industry.
type IndustryBenchmark struct {
	Industry             Industry `json:"industry"`
	AvgCurrentRatio      float64  `json:"avg_current_ratio"`
	AvgGrossMargin       float64  `json:"avg_gross_margin"`
	AvgNetMargin         float64  `json:"avg_net_margin"`
	AvgDebtToEquity      float64  `json:"avg_debt_to_equity"`
	AvgInventoryTurnover float64  `json:"avg_inventory_turnover"`
	AvgReceivablesDays   float64  `json:"avg_receivables_days"`
	AvgROA               float64  `json:"avg_roa"`
	AvgROE               float64  `json:"avg_roe"`
	ExpectedRevGrowth    float64  `json:"expected_revenue_growth"`
}
