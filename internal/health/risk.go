package health

import (
	"fmt"

	"github.com/moneyhealth/backend/internal/ledger"
)

// RiskLevel is the traffic light of a transaction assessment.
type RiskLevel string

const (
	RiskGreen  RiskLevel = "green"
	RiskYellow RiskLevel = "yellow"
	RiskRed    RiskLevel = "red"
)

// Assessment is the verdict on a transaction that is about to be added.
type Assessment struct {
	RiskLevel      RiskLevel `json:"riskLevel" example:"yellow"`
	Title          string    `json:"title" example:"Spending is getting high"`
	Message        string    `json:"message" example:"After this expense you will have spent 85% of your income."`
	Recommendation string    `json:"recommendation" example:"Check whether this purchase can wait."`
	ShouldWarn     bool      `json:"shouldWarn" example:"true"`
	AmountRatio    float64   `json:"amountRatio" example:"0.1"`     // Amount divided by monthly income
	ResultingRatio float64   `json:"resultingRatio" example:"0.85"` // Resulting bucket total divided by monthly income
}

// AssessTransaction evaluates a new transaction against the running totals
// of month only.
func AssessTransaction(month ledger.Month, t ledger.Type, amount float64, category string) Assessment {
	f := figuresOf(month.Totals)
	if parsed, err := ledger.ParseType(string(t)); err == nil {
		t = parsed
	}

	label := "this transaction"
	if category != "" {
		label = fmt.Sprintf("this %s transaction", category)
	}

	if t.IsIncome() {
		return verdict(RiskGreen, "Income", "Income always improves your position.", "", 0, 0)
	}

	if f.income <= 0 {
		switch t {
		case ledger.TypeExpense, ledger.TypeDebtPayment:
			return verdict(RiskRed, "No income recorded",
				fmt.Sprintf("There is no income recorded this month to cover %s.", label),
				"Record your income first or make sure you have savings to cover it.", 0, 0)
		case ledger.TypeSavings, ledger.TypeInvesting, ledger.TypeEmergencyFund:
			return verdict(RiskYellow, "No income recorded",
				"There is no income recorded this month, this money comes from existing cash.",
				"Make sure your cash covers your upcoming expenses.", 0, 0)
		default:
			return verdict(RiskGreen, "Looks fine", "This transaction does not affect your spending.", "", 0, 0)
		}
	}

	single := amount / f.income

	switch t {
	case ledger.TypeExpense:
		resulting := (f.expenses + amount) / f.income
		switch {
		case single > 0.5:
			return verdict(RiskRed, "Very large expense",
				fmt.Sprintf("%s alone is %d%% of your monthly income.", capitalize(label), percent(single)),
				"Consider postponing it or spreading the cost.", single, resulting)
		case resulting > 1.0:
			return verdict(RiskRed, "You would overspend",
				fmt.Sprintf("After %s your expenses would be %d%% of your income.", label, percent(resulting)),
				"Cut back elsewhere or postpone this expense.", single, resulting)
		case resulting > 0.8:
			return verdict(RiskYellow, "Spending is getting high",
				fmt.Sprintf("After %s your expenses would be %d%% of your income.", label, percent(resulting)),
				"Check whether this purchase can wait.", single, resulting)
		default:
			return verdict(RiskGreen, "Within budget",
				fmt.Sprintf("After %s your expenses would be %d%% of your income.", label, percent(resulting)),
				"", single, resulting)
		}

	case ledger.TypeSavings, ledger.TypeInvesting, ledger.TypeEmergencyFund:
		resulting := (f.expenses + f.savings + f.investing + f.debtPay + amount) / f.income
		switch {
		case resulting > 1.0:
			return verdict(RiskYellow, "More than you earned",
				fmt.Sprintf("After %s you would have allocated %d%% of your income.", label, percent(resulting)),
				"Make sure you keep enough cash for your expenses.", single, resulting)
		case single > 0.5:
			return verdict(RiskYellow, "Large transfer",
				fmt.Sprintf("%s is %d%% of your monthly income.", capitalize(label), percent(single)),
				"Great for your wealth, but keep enough cash for the rest of the month.", single, resulting)
		default:
			return verdict(RiskGreen, "Good move",
				"Setting money aside improves your financial health.", "", single, resulting)
		}

	case ledger.TypeDebtPayment:
		resulting := (f.debtPay + amount) / f.income
		switch {
		case single > 0.5:
			return verdict(RiskRed, "Very large debt payment",
				fmt.Sprintf("%s is %d%% of your monthly income.", capitalize(label), percent(single)),
				"Check that enough cash remains for your living costs.", single, resulting)
		case resulting > 0.5:
			return verdict(RiskRed, "Debt payments too high",
				fmt.Sprintf("Debt payments would take %d%% of your income.", percent(resulting)),
				"Consider renegotiating your repayment plan.", single, resulting)
		case resulting > 0.3:
			return verdict(RiskYellow, "Debt payments are significant",
				fmt.Sprintf("Debt payments would take %d%% of your income.", percent(resulting)),
				"Keep an eye on your remaining cash.", single, resulting)
		default:
			return verdict(RiskGreen, "Manageable payment",
				fmt.Sprintf("Debt payments would take %d%% of your income.", percent(resulting)),
				"", single, resulting)
		}
	}

	return verdict(RiskGreen, "Looks fine", "This transaction does not affect your spending.", "", single, 0)
}

func verdict(level RiskLevel, title, message, recommendation string, single, resulting float64) Assessment {
	return Assessment{
		RiskLevel:      level,
		Title:          title,
		Message:        message,
		Recommendation: recommendation,
		ShouldWarn:     level != RiskGreen,
		AmountRatio:    single,
		ResultingRatio: resulting,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
