// Package extract maps raw, free-text statement line items into the
// fixed set of canonical financial fields the ratio engine consumes.
package extract

import (
	"strconv"
	"strings"

	"sme_platform/pkg/models"
)

// Section identifies which statement mapping a rule reads from.
type Section string

const (
	SectionBalanceSheet    Section = "balance_sheet"
	SectionIncomeStatement Section = "income_statement"
	SectionCashFlow        Section = "cash_flow"
)

// Rule binds a canonical field to the label keywords that feed it.
// A label matches when it contains any keyword, case-insensitively.
type Rule struct {
	Field    string
	Section  Section
	Keywords []string
}

// DefaultRules is the ordered mapping used by FromBundle. The order is
// part of the contract: derived back-fills (gross_profit, equity) read
// fields extracted earlier.
var DefaultRules = []Rule{
	{Field: "current_assets", Section: SectionBalanceSheet, Keywords: []string{"current asset", "cash", "receivable", "inventory"}},
	{Field: "inventory", Section: SectionBalanceSheet, Keywords: []string{"inventory"}},
	{Field: "current_liabilities", Section: SectionBalanceSheet, Keywords: []string{"current liab", "payable"}},
	{Field: "total_assets", Section: SectionBalanceSheet, Keywords: []string{"total asset"}},
	{Field: "total_liabilities", Section: SectionBalanceSheet, Keywords: []string{"total liab", "debt", "loan"}},
	{Field: "equity", Section: SectionBalanceSheet, Keywords: []string{"equity", "capital"}},
	{Field: "receivables", Section: SectionBalanceSheet, Keywords: []string{"receivable", "debtors"}},
	{Field: "payables", Section: SectionBalanceSheet, Keywords: []string{"payable", "creditors"}},
	{Field: "revenue", Section: SectionIncomeStatement, Keywords: []string{"revenue", "sales", "turnover"}},
	{Field: "cogs", Section: SectionIncomeStatement, Keywords: []string{"cost of goods", "cogs", "cost of sales"}},
	{Field: "gross_profit", Section: SectionIncomeStatement, Keywords: []string{"gross profit"}},
	{Field: "net_income", Section: SectionIncomeStatement, Keywords: []string{"net income", "net profit", "profit after tax"}},
	{Field: "operating_income", Section: SectionIncomeStatement, Keywords: []string{"operating income", "ebit"}},
	{Field: "interest_expense", Section: SectionIncomeStatement, Keywords: []string{"interest expense", "interest paid"}},
}

// Values is the canonical extraction result. A nil field means "not
// found", which downstream guards treat differently from zero.
type Values struct {
	CurrentAssets      *float64
	Inventory          *float64
	CurrentLiabilities *float64
	TotalAssets        *float64
	TotalLiabilities   *float64
	Equity             *float64
	Receivables        *float64
	Payables           *float64

	Revenue         *float64
	COGS            *float64
	GrossProfit     *float64
	NetIncome       *float64
	OperatingIncome *float64
	InterestExpense *float64
}

// FromBundle extracts canonical values from a statement bundle using
// DefaultRules.
func FromBundle(b *models.StatementBundle) *Values {
	return WithRules(b, DefaultRules)
}

// WithRules extracts canonical values using a caller-supplied rule list.
func WithRules(b *models.StatementBundle, rules []Rule) *Values {
	fields := make(map[string]*float64, len(rules))
	for _, r := range rules {
		fields[r.Field] = sumMatching(section(b, r.Section), r.Keywords)
	}

	// Total assets fall back to current assets when no explicit total
	// line was found.
	if fields["total_assets"] == nil {
		fields["total_assets"] = fields["current_assets"]
	}

	// Derived back-fills.
	if fields["gross_profit"] == nil && fields["revenue"] != nil && fields["cogs"] != nil {
		gp := *fields["revenue"] - *fields["cogs"]
		fields["gross_profit"] = &gp
	}
	if fields["equity"] == nil && fields["total_assets"] != nil && fields["total_liabilities"] != nil {
		eq := *fields["total_assets"] - *fields["total_liabilities"]
		fields["equity"] = &eq
	}

	return &Values{
		CurrentAssets:      fields["current_assets"],
		Inventory:          fields["inventory"],
		CurrentLiabilities: fields["current_liabilities"],
		TotalAssets:        fields["total_assets"],
		TotalLiabilities:   fields["total_liabilities"],
		Equity:             fields["equity"],
		Receivables:        fields["receivables"],
		Payables:           fields["payables"],
		Revenue:            fields["revenue"],
		COGS:               fields["cogs"],
		GrossProfit:        fields["gross_profit"],
		NetIncome:          fields["net_income"],
		OperatingIncome:    fields["operating_income"],
		InterestExpense:    fields["interest_expense"],
	}
}

func section(b *models.StatementBundle, s Section) map[string]interface{} {
	if b == nil {
		return nil
	}
	switch s {
	case SectionBalanceSheet:
		return b.BalanceSheet
	case SectionIncomeStatement:
		return b.IncomeStatement
	case SectionCashFlow:
		return b.CashFlow
	}
	return nil
}

// sumMatching sums every value whose label contains one of the
// keywords. Unparseable values are skipped. A zero total reads as "not
// found": a true zero line item is indistinguishable from a missing
// one, and silence beats a misleading zero in the ratios.
func sumMatching(data map[string]interface{}, keywords []string) *float64 {
	total := 0.0
	for label, raw := range data {
		lower := strings.ToLower(label)
		matched := false
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if v, ok := coerce(raw); ok {
			total += v
		}
	}
	if total > 0 {
		return &total
	}
	return nil
}

// coerce turns an uploaded cell value into a float64. Strings tolerate
// thousands separators and the rupee sign, matching what table parsing
// produces upstream.
func coerce(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		s = strings.ReplaceAll(s, ",", "")
		s = strings.ReplaceAll(s, "₹", "")
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
