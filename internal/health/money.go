package health

import (
	"fmt"
	"math"
	"strings"

	"github.com/moneyhealth/backend/internal/ledger"
)

// Status tells which branch of the primary scoring produced the result.
type Status string

const (
	StatusNoData       Status = "no_data"
	StatusHighRisk     Status = "high_risk"
	StatusSnapshotOnly Status = "snapshot_only"
	StatusScored       Status = "scored"
)

// Component caps of the primary score.
const (
	MaxCashflow       = 40
	MaxDiscipline     = 25
	MaxDebt           = 25
	MaxTrend          = 10
	MaxEmergencyBonus = 10
)

// Components are the weighted parts of the primary score.
type Components struct {
	Cashflow       float64 `json:"cashflow" example:"40" maximum:"40"`
	Discipline     float64 `json:"discipline" example:"15" maximum:"25"`
	Debt           float64 `json:"debt" example:"25" maximum:"25"`
	Trend          float64 `json:"trend" example:"5" maximum:"10"`
	EmergencyBonus float64 `json:"emergencyBonus" example:"0" maximum:"10"`
}

func (c Components) sum() float64 {
	return c.Cashflow + c.Discipline + c.Debt + c.Trend + c.EmergencyBonus
}

func (c Components) rounded() Components {
	r := func(v float64) float64 { return math.Round(v*100) / 100 }
	return Components{
		Cashflow:       r(c.Cashflow),
		Discipline:     r(c.Discipline),
		Debt:           r(c.Debt),
		Trend:          r(c.Trend),
		EmergencyBonus: r(c.EmergencyBonus),
	}
}

// Ratios are the flow ratios the primary score was computed from.
type Ratios struct {
	OutflowRatio     float64 `json:"outflowRatio" example:"0.7"`
	WealthRate       float64 `json:"wealthRate" example:"0.1"`
	DebtRatio        float64 `json:"debtRatio" example:"0"`
	EffectiveDebtPay float64 `json:"effectiveDebtPay" example:"0"`  // Larger of logged debt payments and the monthly obligation of all debts
	RemainingCash    float64 `json:"remainingCash" example:"900"`   // Income minus all outflows
	EmergencyMonths  float64 `json:"emergencyMonths" example:"1.5"` // Emergency balance divided by monthly expenses
}

// Explanations are the user facing texts for each component.
type Explanations struct {
	Summary    string   `json:"summary" example:"Good financial health."`
	Cashflow   string   `json:"cashflow"`
	Discipline string   `json:"discipline"`
	Debt       string   `json:"debt"`
	Trend      string   `json:"trend"`
	Emergency  string   `json:"emergency"`
	Guardrails []string `json:"guardrails"`
}

// PrimaryHealthScore is the weighted 0-100 money health score.
type PrimaryHealthScore struct {
	Score      int          `json:"score" example:"85" minimum:"0" maximum:"100"`
	Status     Status       `json:"status" example:"scored"`
	Components Components   `json:"components"`
	Ratios     Ratios       `json:"ratios"`
	Breakdown  Explanations `json:"breakdown"`
}

// ScoreMoney computes the primary health score for month.
//
// prev is the previous calendar month and may be nil. debts should be the
// outstanding debts at the end of month, see ledger.Outstanding.
func ScoreMoney(month ledger.Month, snapshot ledger.Snapshot, debts []ledger.Debt, prev *ledger.Month) PrimaryHealthScore {
	f := figuresOf(month.Totals)

	if f.activity() == 0 {
		return PrimaryHealthScore{
			Status:    StatusNoData,
			Breakdown: Explanations{Summary: "No data recorded for this month."},
		}
	}

	if f.income <= 0 {
		return scoreWithoutIncome(f, snapshot, debts)
	}

	obligation := ledger.MonthlyObligation(debts).InexactFloat64()
	debtPay := math.Max(f.debtPay, obligation)
	r := ratiosOf(f, debtPay, snapshot)

	var c Components
	var e Explanations

	c.Cashflow = cashflowPoints(r.OutflowRatio)
	e.Cashflow = cashflowText(r.OutflowRatio)

	c.Discipline = disciplinePoints(r.WealthRate)
	e.Discipline = disciplineText(r.WealthRate)
	if r.DebtRatio > 0.35 && c.Discipline < 5 {
		c.Discipline = 5
		e.Discipline += " Debt repayments above 35% of income are credited as a minimum of 5 points."
	}

	c.Debt = debtPoints(r.DebtRatio)
	e.Debt = debtText(r.DebtRatio)
	if debtPay > 0 && snapshot.Cash.InexactFloat64() < debtPay {
		c.Debt = math.Max(0, c.Debt-5)
		e.Debt += " Cash on hand does not cover this month's debt obligations."
	}

	c.Trend, e.Trend = trendPoints(r, prev, obligation)

	c.EmergencyBonus = emergencyPoints(r.EmergencyMonths)
	e.Emergency = emergencyText(r.EmergencyMonths)

	total := c.sum()
	if r.RemainingCash < 0 {
		total = math.Min(total, 35)
		e.Guardrails = append(e.Guardrails, "Outflows exceed income, the score is capped at 35.")
	}

	if r.DebtRatio > 0.5 {
		total = math.Min(total, 25)
		e.Guardrails = append(e.Guardrails, "Debt payments take more than half of income, the score is capped at 25.")
	}

	score := int(math.Round(clamp(total, 0, 100)))
	e.Summary = summaryText(score)

	return PrimaryHealthScore{
		Score:      score,
		Status:     StatusScored,
		Components: c.rounded(),
		Ratios:     r,
		Breakdown:  e,
	}
}

func ratiosOf(f figures, debtPay float64, snapshot ledger.Snapshot) Ratios {
	outflow := f.expenses + f.savings + f.investing + debtPay
	return Ratios{
		OutflowRatio:     f.ratio(outflow),
		WealthRate:       f.ratio(f.savings + f.investing),
		DebtRatio:        f.ratio(debtPay),
		EffectiveDebtPay: debtPay,
		RemainingCash:    f.income - outflow,
		EmergencyMonths:  snapshot.Emergency.InexactFloat64() / math.Max(f.expenses, 1),
	}
}

// scoreWithoutIncome handles months with activity but no income.
func scoreWithoutIncome(f figures, snapshot ledger.Snapshot, debts []ledger.Debt) PrimaryHealthScore {
	if f.expenses > 0 || f.debtPay > 0 || ledger.HasDebt(debts) || snapshot.Debt.IsPositive() {
		return PrimaryHealthScore{
			Score:  15,
			Status: StatusHighRisk,
			Breakdown: Explanations{
				Summary: "No income recorded while expenses or debts exist. This is a high risk situation.",
			},
		}
	}

	balance := snapshot.Balance().InexactFloat64()
	score := 30
	switch {
	case balance >= 10000:
		score = 55
	case balance >= 5000:
		score = 45
	}

	return PrimaryHealthScore{
		Score:  score,
		Status: StatusSnapshotOnly,
		Breakdown: Explanations{
			Summary: fmt.Sprintf("No income this month. The score is based on your balances of %.0f only.", balance),
		},
	}
}

func cashflowPoints(r float64) float64 {
	switch {
	case r <= 0.7:
		return 40
	case r <= 0.9:
		return lerp(r, 0.7, 0.9, 40, 25)
	case r <= 1.0:
		return lerp(r, 0.9, 1.0, 25, 10)
	default:
		return 0
	}
}

func cashflowText(r float64) string {
	p := percent(r)
	switch {
	case r <= 0.7:
		return fmt.Sprintf("Strong cashflow: %d%% of income is committed, leaving a healthy buffer.", p)
	case r <= 0.9:
		return fmt.Sprintf("Moderate cashflow: %d%% of income is committed. Keep an eye on the remaining margin.", p)
	case r <= 1.0:
		return fmt.Sprintf("Tight cashflow: %d%% of income is committed and almost nothing is left over.", p)
	default:
		return fmt.Sprintf("Negative cashflow: outflows are %d%% of income.", p)
	}
}

func disciplinePoints(w float64) float64 {
	switch {
	case w >= 0.2:
		return 25
	case w >= 0.1:
		return lerp(w, 0.1, 0.2, 15, 25)
	case w >= 0.05:
		return lerp(w, 0.05, 0.1, 8, 15)
	case w > 0:
		return lerp(w, 0, 0.05, 0, 8)
	default:
		return 0
	}
}

func disciplineText(w float64) string {
	p := percent(w)
	switch {
	case w >= 0.2:
		return fmt.Sprintf("Excellent: %d%% of income goes to savings and investments.", p)
	case w >= 0.1:
		return fmt.Sprintf("Good: %d%% of income goes to savings and investments. Aim for 20%%.", p)
	case w >= 0.05:
		return fmt.Sprintf("Fair: %d%% of income goes to savings and investments. Aim for at least 10%%.", p)
	case w > 0:
		return fmt.Sprintf("Low: only %d%% of income goes to savings and investments.", p)
	default:
		return "Nothing was set aside for savings or investments this month."
	}
}

func debtPoints(d float64) float64 {
	switch {
	case d <= 0.15:
		return 25
	case d <= 0.3:
		return lerp(d, 0.15, 0.3, 25, 15)
	case d <= 0.4:
		return lerp(d, 0.3, 0.4, 15, 5)
	default:
		return 0
	}
}

func debtText(d float64) string {
	p := percent(d)
	switch {
	case d == 0:
		return "No debt payments this month."
	case d <= 0.15:
		return fmt.Sprintf("Manageable: debt payments take %d%% of income.", p)
	case d <= 0.3:
		return fmt.Sprintf("Elevated: debt payments take %d%% of income.", p)
	case d <= 0.4:
		return fmt.Sprintf("High: debt payments take %d%% of income.", p)
	default:
		return fmt.Sprintf("Critical: debt payments take %d%% of income.", p)
	}
}

// trendPoints compares the month to the previous one. The monthly debt
// obligation is applied to the previous month as well so both debt ratios
// use the same floor.
func trendPoints(current Ratios, prev *ledger.Month, obligation float64) (float64, string) {
	if prev == nil {
		return 5, "Not enough history to compare with the previous month."
	}

	pf := figuresOf(prev.Totals)
	if pf.income <= 0 {
		return 5, "The previous month has no income to compare with."
	}

	pr := ratiosOf(pf, math.Max(pf.debtPay, obligation), ledger.Snapshot{})

	points := 5.0
	var notes []string
	if current.OutflowRatio < pr.OutflowRatio {
		points += 3
		notes = append(notes, "outflow ratio improved")
	}

	if current.DebtRatio < pr.DebtRatio {
		points += 3
		notes = append(notes, "debt ratio improved")
	}

	if current.WealthRate >= 0.95*pr.WealthRate {
		points += 4
		notes = append(notes, "wealth rate held up")
	}

	if len(notes) == 0 {
		return points, "No improvement compared to the previous month."
	}

	return math.Min(points, MaxTrend), "Compared to the previous month: " + strings.Join(notes, ", ") + "."
}

func emergencyPoints(months float64) float64 {
	switch {
	case months >= 3:
		return 10
	case months >= 1:
		return 5
	default:
		return 0
	}
}

func emergencyText(months float64) string {
	switch {
	case months >= 3:
		return fmt.Sprintf("Your emergency fund covers %.1f months of expenses.", months)
	case months >= 1:
		return fmt.Sprintf("Your emergency fund covers %.1f months of expenses. Aim for 3.", months)
	default:
		return "Your emergency fund covers less than one month of expenses."
	}
}

func summaryText(score int) string {
	switch {
	case score >= 80:
		return "Excellent financial health."
	case score >= 60:
		return "Good financial health."
	case score >= 40:
		return "Fair financial health. There is room for improvement."
	default:
		return "Your finances need attention."
	}
}
