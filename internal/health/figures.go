// Package health implements the financial health scoring engine.
//
// Two independent scoring models live here. PrimaryHealthScore (ScoreMoney)
// is the weighted 0-100 score shown to the user. TrendMetricScore
// (ScoreMonth) is a flat five-metric score used only to compare months.
// Both compute a savings rate and a debt ratio, but with different tier
// boundaries and point scales. Trend comparison relies on ScoreMonth, so the
// two must not be merged.
//
// All functions are pure and safe for concurrent use.
package health

import (
	"math"

	"github.com/moneyhealth/backend/internal/ledger"
)

// figures is the float view of a month's totals used by the formulas.
type figures struct {
	income    float64
	expenses  float64
	savings   float64
	investing float64
	debtPay   float64
}

func figuresOf(t ledger.Totals) figures {
	return figures{
		income:    t.Income.InexactFloat64(),
		expenses:  t.Expenses.InexactFloat64(),
		savings:   t.Savings.InexactFloat64(),
		investing: t.Investing.InexactFloat64(),
		debtPay:   t.DebtPay.InexactFloat64(),
	}
}

func (f figures) activity() float64 {
	return f.income + f.expenses + f.savings + f.investing + f.debtPay
}

// ratio divides by the income. Callers must have checked that income is positive.
func (f figures) ratio(v float64) float64 {
	return v / f.income
}

// lerp maps x from [x0, x1] onto [y0, y1].
func lerp(x, x0, x1, y0, y1 float64) float64 {
	return y0 + (x-x0)/(x1-x0)*(y1-y0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// percent returns the ratio as a rounded integer percentage.
func percent(r float64) int {
	return int(math.Round(r * 100))
}
