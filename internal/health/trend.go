package health

import (
	"math"

	"github.com/moneyhealth/backend/internal/ledger"
	"github.com/moneyhealth/backend/internal/types"
)

// Direction classifies a trend.
type Direction string

const (
	DirectionImproving Direction = "improving"
	DirectionStable    Direction = "stable"
	DirectionDeclining Direction = "declining"
)

// windowSize is the number of months in each compared window.
const windowSize = 3

// trendThreshold is the point change above which a trend is not stable.
const trendThreshold = 5

// MetricChange compares one metric between the two windows.
type MetricChange struct {
	Current  int `json:"current" example:"20"`
	Previous int `json:"previous" example:"15"`
	Change   int `json:"change" example:"5"`
}

// TrendMetrics holds the per-metric comparison. Budget adherence is not part of it.
type TrendMetrics struct {
	Income  MetricChange `json:"income"`
	Expense MetricChange `json:"expense"`
	Savings MetricChange `json:"savings"`
	Debt    MetricChange `json:"debt"`
}

// HealthTrend compares the trailing three months with the three months before.
type HealthTrend struct {
	CurrentAverage  int           `json:"currentAverage" example:"78"`
	PreviousAverage int           `json:"previousAverage" example:"70"`
	ChangePoints    int           `json:"changePoints" example:"8"`
	Trend           Direction     `json:"trend" example:"improving"`
	Metrics         TrendMetrics  `json:"metrics"`
	CurrentMonths   []types.Month `json:"currentMonths"`  // Months of the current window that contain data
	PreviousMonths  []types.Month `json:"previousMonths"` // Months of the previous window that contain data
}

type windowAverages struct {
	total, income, expense, savings, debt float64
	months                                []types.Month
}

// AnalyzeTrend compares the window [current-2, current] with
// [current-5, current-3]. Months without data are skipped.
//
// It returns nil if neither window contains any data. An empty window
// averages to zero.
func AnalyzeTrend(months map[types.Month]ledger.Month, current types.Month) *HealthTrend {
	cur := averageWindow(months, types.Window(current, windowSize))
	prev := averageWindow(months, types.Window(current.AddDate(0, -windowSize), windowSize))

	if len(cur.months) == 0 && len(prev.months) == 0 {
		return nil
	}

	currentAvg := int(math.Round(cur.total))
	previousAvg := int(math.Round(prev.total))
	change := currentAvg - previousAvg

	direction := DirectionStable
	switch {
	case change > trendThreshold:
		direction = DirectionImproving
	case change < -trendThreshold:
		direction = DirectionDeclining
	}

	return &HealthTrend{
		CurrentAverage:  currentAvg,
		PreviousAverage: previousAvg,
		ChangePoints:    change,
		Trend:           direction,
		Metrics: TrendMetrics{
			Income:  metricChange(cur.income, prev.income),
			Expense: metricChange(cur.expense, prev.expense),
			Savings: metricChange(cur.savings, prev.savings),
			Debt:    metricChange(cur.debt, prev.debt),
		},
		CurrentMonths:  cur.months,
		PreviousMonths: prev.months,
	}
}

// ScoreMonthIn scores month m from the months map, using the calendar month
// before it as comparison if it has data.
func ScoreMonthIn(months map[types.Month]ledger.Month, m types.Month) TrendMetricScore {
	return ScoreMonth(months[m], Previous(months, m))
}

// Previous returns the month before m if it contains data.
func Previous(months map[types.Month]ledger.Month, m types.Month) *ledger.Month {
	p, ok := months[m.AddDate(0, -1)]
	if !ok || p.IsEmpty() {
		return nil
	}
	return &p
}

func averageWindow(months map[types.Month]ledger.Month, window []types.Month) windowAverages {
	var a windowAverages
	for _, m := range window {
		data, ok := months[m]
		if !ok || data.IsEmpty() {
			continue
		}

		s := ScoreMonthIn(months, m)
		a.total += float64(s.Total)
		a.income += float64(s.IncomeScore)
		a.expense += float64(s.ExpenseScore)
		a.savings += float64(s.SavingsScore)
		a.debt += float64(s.DebtScore)
		a.months = append(a.months, m)
	}

	if n := float64(len(a.months)); n > 0 {
		a.total /= n
		a.income /= n
		a.expense /= n
		a.savings /= n
		a.debt /= n
	}

	return a
}

func metricChange(current, previous float64) MetricChange {
	c := int(math.Round(current))
	p := int(math.Round(previous))
	return MetricChange{Current: c, Previous: p, Change: c - p}
}
