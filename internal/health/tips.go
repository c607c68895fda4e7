package health

// Priority ranks a tip.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Tip is a single recommendation.
type Tip struct {
	Category    string   `json:"category" example:"savings"`
	Priority    Priority `json:"priority" example:"medium"`
	Title       string   `json:"title" example:"Increase your savings rate"`
	Description string   `json:"description" example:"You save less than 10% of your income."`
	Actionable  bool     `json:"actionable" example:"true"`
}

// Targets are the monthly goals a user has set. Zero means not set.
type Targets struct {
	Savings   float64
	Investing float64
}

// GenerateTips maps a month score, an optional trend and the user's targets
// to recommendations.
//
// Tips are ordered income, expense, savings, debt, adherence, trend, goals.
// At most one tip is produced per metric.
func GenerateTips(s TrendMetricScore, trend *HealthTrend, targets Targets) []Tip {
	tips := []Tip{}
	add := func(category string, priority Priority, title, description string, actionable bool) {
		tips = append(tips, Tip{
			Category:    category,
			Priority:    priority,
			Title:       title,
			Description: description,
			Actionable:  actionable,
		})
	}

	switch {
	case s.IncomeScore == 0:
		add("income", PriorityHigh, "Record your income",
			"No income was recorded this month. Add your salary and other income so your health can be assessed.", true)
	case s.FirstIncome:
		add("income", PriorityLow, "Keep recording your income",
			"There is no earlier income to compare with yet. Income stability is measured from next month on.", true)
	case s.IncomeScore < 10:
		add("income", PriorityHigh, "Income dropped sharply",
			"Your income fell by more than 30% compared to last month. Review your fixed costs and build a buffer.", true)
	case s.IncomeScore < 20:
		add("income", PriorityMedium, "Stabilize your income",
			"Your income varies from month to month. Consider budgeting with your lowest expected income.", true)
	}

	switch {
	case s.ExpenseScore == 0:
		add("expense", PriorityHigh, "Rebalance your spending",
			"Either more money was allocated than you earned, or most of your income is sitting idle. Aim to direct 60% to 100% of income.", true)
	case s.ExpenseScore < 10:
		add("expense", PriorityMedium, "Put idle cash to work",
			"Less than 40% of your income is allocated. Move unallocated money to savings or investments.", true)
	case s.ExpenseScore < 15:
		add("expense", PriorityLow, "Review your allocation",
			"Part of your income is not allocated to any purpose.", true)
	}

	switch {
	case s.SavingsScore < 10:
		add("savings", PriorityHigh, "Start saving regularly",
			"You save less than 5% of your income. Set up an automatic transfer on payday, even a small one.", true)
	case s.SavingsScore < 15:
		add("savings", PriorityMedium, "Increase your savings rate",
			"You save less than 10% of your income. Try to raise it step by step towards 20%.", true)
	case s.SavingsScore < 20:
		add("savings", PriorityLow, "Aim for a 20% savings rate",
			"You are saving well. Reaching 20% of income builds wealth faster.", true)
	}

	switch {
	case s.DebtScore == 0:
		add("debt", PriorityHigh, "Reduce your debt burden",
			"Debt payments take more than half of your income. Consider consolidating or renegotiating your debts.", true)
	case s.DebtScore < 10:
		add("debt", PriorityHigh, "Debt payments are high",
			"Debt payments take more than 35% of your income. Avoid new debt and pay down the most expensive loans first.", true)
	case s.DebtScore < 20:
		add("debt", PriorityMedium, "Keep debt in check",
			"Debt payments take more than 20% of your income.", true)
	}

	switch {
	case s.AdherenceScore < 10:
		add("adherence", PriorityMedium, "Save consistently",
			"Your savings vary a lot from month to month or were skipped. A fixed monthly amount is easier to keep.", true)
	case s.AdherenceScore < 20:
		add("adherence", PriorityLow, "Keep your savings steady",
			"Try to save a similar amount every month.", true)
	}

	if trend != nil {
		switch trend.Trend {
		case DirectionDeclining:
			add("trend", PriorityHigh, "Your financial health is declining",
				"Your average score over the last three months dropped compared to the three months before. Look at which metric fell the most.", false)
		case DirectionImproving:
			add("trend", PriorityLow, "Keep up the good work",
				"Your average score over the last three months improved compared to the three months before.", false)
		}
	}

	if targets.Savings <= 0 && targets.Investing <= 0 {
		add("goals", PriorityLow, "Set monthly targets",
			"You have not set savings or investing targets. Targets make progress visible.", true)
	}

	return tips
}
