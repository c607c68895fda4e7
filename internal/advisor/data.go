package advisor

import (
	"github.com/moneyhealth/backend/internal/health"
	"github.com/moneyhealth/backend/internal/ledger"
	"github.com/moneyhealth/backend/internal/types"
	"github.com/shopspring/decimal"
)

// FinancialData is the aggregated view of a month sent to the narrative
// service.
type FinancialData struct {
	Month            types.Month             `json:"month" example:"2024-06"`
	Currency         string                  `json:"currency" example:"EUR"`
	Totals           ledger.Totals           `json:"totals"`
	Ratios           health.Ratios           `json:"ratios"`
	Snapshot         ledger.Snapshot         `json:"snapshot"`
	DebtTotal        decimal.Decimal         `json:"debtTotal" example:"8000"`
	DebtMonthly      decimal.Decimal         `json:"debtMonthly" example:"250"`
	HealthScore      int                     `json:"healthScore" example:"72"`
	Status           health.Status           `json:"status" example:"scored"`
	Components       health.Components       `json:"components"`
	MonthScore       health.TrendMetricScore `json:"monthScore"`
	Trend            *health.HealthTrend     `json:"trend"`
	IncomeBreakdown  ledger.Breakdown        `json:"incomeBreakdown"`
	ExpenseBreakdown ledger.Breakdown        `json:"expenseBreakdown"`
}

// Input holds everything the advisor needs for one month: the data sent to
// the remote service and the local results used as fallback.
type Input struct {
	Data      FinancialData
	Score     health.PrimaryHealthScore
	Breakdown health.TrendMetricScore
	Trend     *health.HealthTrend
	Tips      []health.Tip
}

// NewInput assembles the advisor input for a month.
//
// debts are expected to carry their outstanding totals at the end of the
// month, see ledger.Outstanding.
func NewInput(currency string, month ledger.Month, snapshot ledger.Snapshot, debts []ledger.Debt, score health.PrimaryHealthScore, breakdown health.TrendMetricScore, trend *health.HealthTrend, tips []health.Tip) Input {
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.Total)
	}

	return Input{
		Data: FinancialData{
			Month:            month.Month,
			Currency:         currency,
			Totals:           month.Totals,
			Ratios:           score.Ratios,
			Snapshot:         snapshot,
			DebtTotal:        total,
			DebtMonthly:      ledger.MonthlyObligation(debts),
			HealthScore:      score.Score,
			Status:           score.Status,
			Components:       score.Components,
			MonthScore:       breakdown,
			Trend:            trend,
			IncomeBreakdown:  month.IncomeBreakdown,
			ExpenseBreakdown: month.ExpenseBreakdown,
		},
		Score:     score,
		Breakdown: breakdown,
		Trend:     trend,
		Tips:      tips,
	}
}
