package health

import "sme_platform/pkg/models"

// Component weights of the health score. They sum to 100.
var weights = struct {
	liquidity     float64
	profitability float64
	efficiency    float64
	solvency      float64
	cashFlow      float64
}{20, 30, 20, 20, 10}

// present reports whether a ratio carries usable information. A zero
// value reads as missing, mirroring how the extraction layer never
// emits zeros for found data.
func present(p *float64) bool {
	return p != nil && *p != 0
}

// HealthScore combines five component scores into the 0-100 composite.
// Liquidity and profitability contribute nothing without their ratio;
// efficiency and solvency fall back to a midpoint of 50.
func HealthScore(m *models.FinancialMetrics, bench *models.IndustryBenchmark) int {
	score := 0.0

	liquidity := 0.0
	if present(m.CurrentRatio) {
		switch cr := *m.CurrentRatio; {
		case cr >= 2.0:
			liquidity = 100
		case cr >= 1.5:
			liquidity = 80
		case cr >= 1.0:
			liquidity = 60
		default:
			liquidity = 40
		}
	}
	score += liquidity * weights.liquidity / 100

	profitability := 0.0
	if present(m.NetMargin) {
		nm := *m.NetMargin
		if bench != nil && bench.AvgNetMargin != 0 {
			if nm >= bench.AvgNetMargin {
				profitability = 100
			} else {
				profitability = nm / bench.AvgNetMargin * 100
				if profitability > 100 {
					profitability = 100
				}
			}
		} else {
			switch {
			case nm >= 15:
				profitability = 100
			case nm >= 10:
				profitability = 80
			case nm >= 5:
				profitability = 60
			default:
				profitability = 40
			}
		}
	}
	score += profitability * weights.profitability / 100

	efficiency := 50.0
	if present(m.ReceivablesDays) {
		switch rd := *m.ReceivablesDays; {
		case rd <= 30:
			efficiency = 100
		case rd <= 60:
			efficiency = 70
		case rd <= 90:
			efficiency = 50
		default:
			efficiency = 30
		}
	}
	score += efficiency * weights.efficiency / 100

	solvency := 50.0
	if present(m.DebtToEquity) {
		switch de := *m.DebtToEquity; {
		case de <= 0.5:
			solvency = 100
		case de <= 1.0:
			solvency = 80
		case de <= 2.0:
			solvency = 60
		default:
			solvency = 40
		}
	}
	score += solvency * weights.solvency / 100

	if present(m.CashFlowStability) {
		score += *m.CashFlowStability * weights.cashFlow / 100
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return int(score)
}
