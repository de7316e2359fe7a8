// Package health computes accounting ratios from extracted statement
// values and combines them into the 0-100 financial health score.
package health

import (
	"github.com/shopspring/decimal"

	"sme_platform/pkg/core/extract"
)

// Every ratio returns nil instead of raising when a guard fails: a
// missing or non-positive denominator means "unknown", not an error.

func round2(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}

func round2p(x float64) *float64 {
	r := round2(x)
	return &r
}

// val reads an optional input, treating nil as zero for numerators.
func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// CurrentRatio = current assets / current liabilities.
func CurrentRatio(v *extract.Values) *float64 {
	if cl := val(v.CurrentLiabilities); cl > 0 {
		return round2p(val(v.CurrentAssets) / cl)
	}
	return nil
}

// QuickRatio = (current assets - inventory) / current liabilities.
func QuickRatio(v *extract.Values) *float64 {
	if cl := val(v.CurrentLiabilities); cl > 0 {
		return round2p((val(v.CurrentAssets) - val(v.Inventory)) / cl)
	}
	return nil
}

// GrossMargin = gross profit / revenue * 100.
func GrossMargin(v *extract.Values) *float64 {
	if rev := val(v.Revenue); rev > 0 {
		return round2p(val(v.GrossProfit) / rev * 100)
	}
	return nil
}

// NetMargin = net income / revenue * 100.
func NetMargin(v *extract.Values) *float64 {
	if rev := val(v.Revenue); rev > 0 {
		return round2p(val(v.NetIncome) / rev * 100)
	}
	return nil
}

// ROA = net income / total assets * 100.
func ROA(v *extract.Values) *float64 {
	if ta := val(v.TotalAssets); ta > 0 {
		return round2p(val(v.NetIncome) / ta * 100)
	}
	return nil
}

// ROE = net income / equity * 100.
func ROE(v *extract.Values) *float64 {
	if eq := val(v.Equity); eq > 0 {
		return round2p(val(v.NetIncome) / eq * 100)
	}
	return nil
}

// InventoryTurnover = cogs / inventory.
func InventoryTurnover(v *extract.Values) *float64 {
	if inv := val(v.Inventory); inv > 0 {
		return round2p(val(v.COGS) / inv)
	}
	return nil
}

// ReceivablesDays = receivables / revenue * 365.
func ReceivablesDays(v *extract.Values) *float64 {
	if rev := val(v.Revenue); rev > 0 {
		return round2p(val(v.Receivables) / rev * 365)
	}
	return nil
}

// PayablesDays = payables / cogs * 365.
func PayablesDays(v *extract.Values) *float64 {
	if cogs := val(v.COGS); cogs > 0 {
		return round2p(val(v.Payables) / cogs * 365)
	}
	return nil
}

// DebtToEquity = total liabilities / equity.
func DebtToEquity(v *extract.Values) *float64 {
	if eq := val(v.Equity); eq > 0 {
		return round2p(val(v.TotalLiabilities) / eq)
	}
	return nil
}

// InterestCoverage = operating income / interest expense.
func InterestCoverage(v *extract.Values) *float64 {
	if ie := val(v.InterestExpense); ie > 0 {
		return round2p(val(v.OperatingIncome) / ie)
	}
	return nil
}

// CashFlowStability is a heuristic 0-100 score: base 50, +20 for
// positive net income, +15/+10 by current ratio tier, capped at 100.
func CashFlowStability(v *extract.Values) *float64 {
	score := 50.0
	if val(v.NetIncome) > 0 {
		score += 20
	}
	if cr := CurrentRatio(v); cr != nil {
		if *cr > 1.5 {
			score += 15
		} else if *cr > 1.0 {
			score += 10
		}
	}
	if score > 100 {
		score = 100
	}
	return &score
}

// CashConversionCycle = receivables days + inventory days - payables
// days, with missing legs contributing zero.
func CashConversionCycle(v *extract.Values) *float64 {
	rd := 0.0
	if r := ReceivablesDays(v); r != nil {
		rd = *r
	}
	invDays := 0.0
	if it := InventoryTurnover(v); it != nil && *it > 0 {
		invDays = 365 / *it
	}
	pd := 0.0
	if p := PayablesDays(v); p != nil {
		pd = *p
	}
	return round2p(rd + invDays - pd)
}
