package health

import (
	"strings"

	"github.com/moneyhealth/backend/internal/ledger"
)

// TrendMetricScore is the five-metric breakdown of a single month. Each
// metric is worth up to 25 points. Total is their plain sum and is not
// clamped.
type TrendMetricScore struct {
	IncomeScore    int    `json:"incomeScore" example:"25" maximum:"25"`
	ExpenseScore   int    `json:"expenseScore" example:"25" maximum:"25"`
	SavingsScore   int    `json:"savingsScore" example:"15" maximum:"25"`
	DebtScore      int    `json:"debtScore" example:"25" maximum:"25"`
	AdherenceScore int    `json:"adherenceScore" example:"15" maximum:"25"`
	Total          int    `json:"total" example:"105"`
	Explanation    string `json:"explanation" example:"Income is stable. Savings rate is 10%."`

	// FirstIncome is set when there is income but no previous income to
	// compare it with. IncomeScore is then the fixed 15.
	FirstIncome bool `json:"firstIncome" example:"false"`
}

// ScoreMonth computes the five-metric month score. prev may be nil.
func ScoreMonth(month ledger.Month, prev *ledger.Month) TrendMetricScore {
	f := figuresOf(month.Totals)
	if f.activity() == 0 {
		return TrendMetricScore{Explanation: "No data recorded for this month."}
	}

	var p *figures
	if prev != nil {
		pf := figuresOf(prev.Totals)
		p = &pf
	}

	var notes []string
	s := TrendMetricScore{}

	s.IncomeScore = incomeStability(f, p, &notes)
	s.FirstIncome = f.income > 0 && (p == nil || p.income <= 0)
	s.ExpenseScore = expenseControl(f, &notes)
	s.SavingsScore = savingsRate(f, &notes)
	s.DebtScore = debtManagement(f, &notes)
	s.AdherenceScore = budgetAdherence(f, p, &notes)
	s.Total = s.IncomeScore + s.ExpenseScore + s.SavingsScore + s.DebtScore + s.AdherenceScore
	s.Explanation = strings.Join(notes, " ")

	return s
}

func incomeStability(f figures, p *figures, notes *[]string) int {
	if p == nil || p.income <= 0 {
		if f.income > 0 {
			*notes = append(*notes, "No previous income to compare with.")
			return 15
		}
		*notes = append(*notes, "No income recorded.")
		return 0
	}

	r := f.income / p.income
	switch {
	case r >= 0.95 && r <= 1.05:
		*notes = append(*notes, "Income is stable.")
		return 25
	case r >= 0.9 && r <= 1.1:
		*notes = append(*notes, "Income changed slightly.")
		return 20
	case r >= 0.8 && r <= 1.2:
		*notes = append(*notes, "Income changed noticeably.")
		return 15
	case r >= 0.7:
		*notes = append(*notes, "Income changed significantly.")
		return 10
	default:
		*notes = append(*notes, "Income dropped sharply.")
		return 5
	}
}

// expenseControl rewards income that is actively allocated to any bucket
// and penalizes both overspending and idle cash.
func expenseControl(f figures, notes *[]string) int {
	if f.income <= 0 {
		return 0
	}

	a := f.ratio(f.expenses + f.savings + f.investing + f.debtPay)
	switch {
	case a > 1.0:
		*notes = append(*notes, "More money was allocated than earned.")
		return 0
	case a >= 0.6:
		*notes = append(*notes, "Income is well allocated.")
		return 25
	case a >= 0.5:
		return 20
	case a >= 0.4:
		return 15
	case a >= 0.3:
		*notes = append(*notes, "A large share of income is not allocated.")
		return 8
	default:
		*notes = append(*notes, "Most of the income is not allocated to anything.")
		return 0
	}
}

func savingsRate(f figures, notes *[]string) int {
	if f.income <= 0 {
		return 0
	}

	s := f.ratio(f.savings + f.investing)
	switch {
	case s >= 0.25:
		*notes = append(*notes, "Outstanding savings rate.")
		return 25
	case s >= 0.2:
		return 23
	case s >= 0.15:
		return 20
	case s >= 0.1:
		return 15
	case s >= 0.05:
		*notes = append(*notes, "Savings rate is low.")
		return 10
	case s > 0:
		*notes = append(*notes, "Savings rate is very low.")
		return 5
	default:
		*notes = append(*notes, "Nothing was saved.")
		return 0
	}
}

func debtManagement(f figures, notes *[]string) int {
	if f.income <= 0 {
		if f.debtPay == 0 {
			return 20
		}
		*notes = append(*notes, "Debt payments without income.")
		return 0
	}

	d := f.ratio(f.debtPay)
	switch {
	case d == 0:
		return 25
	case d <= 0.1:
		return 24
	case d <= 0.2:
		return 20
	case d <= 0.35:
		*notes = append(*notes, "Debt payments are significant.")
		return 15
	case d <= 0.5:
		*notes = append(*notes, "Debt payments are high.")
		return 8
	default:
		*notes = append(*notes, "Debt payments take more than half of income.")
		return 0
	}
}

// budgetAdherence measures how consistent saving is from month to month.
func budgetAdherence(f figures, p *figures, notes *[]string) int {
	if f.savings <= 0 {
		return 5
	}

	if p == nil || p.savings <= 0 {
		return 15
	}

	r := f.savings / p.savings
	switch {
	case r >= 0.9 && r <= 1.1:
		*notes = append(*notes, "Savings are consistent.")
		return 25
	case r >= 0.8 && r <= 1.2:
		return 20
	case r >= 0.6 && r <= 1.4:
		return 15
	default:
		*notes = append(*notes, "Savings vary a lot between months.")
		return 8
	}
}
