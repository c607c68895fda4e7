package advisor

import (
	"fmt"

	"github.com/moneyhealth/backend/internal/currency"
	"github.com/moneyhealth/backend/internal/health"
	"github.com/shopspring/decimal"
)

// Rating maps a health score to a label.
func Rating(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Needs attention"
	}
}

// localHealth narrates the health of a month without the remote service.
func localHealth(in Input) HealthNarrative {
	s := in.Score

	n := HealthNarrative{
		Score:           s.Score,
		Rating:          Rating(s.Score),
		Summary:         s.Breakdown.Summary,
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
		Insights:        in.Breakdown.Explanation,
		RiskFactors:     append([]string{}, s.Breakdown.Guardrails...),
	}

	switch s.Status {
	case health.StatusNoData:
		n.Weaknesses = append(n.Weaknesses, "No transactions are recorded for this month.")
	case health.StatusHighRisk:
		n.Weaknesses = append(n.Weaknesses, "Money is going out while no income is recorded.")
		n.RiskFactors = append(n.RiskFactors, "No income to cover expenses and debt payments.")
	case health.StatusSnapshotOnly:
		n.Weaknesses = append(n.Weaknesses, "No income is recorded, the score only reflects your balances.")
	case health.StatusScored:
		n.Strengths, n.Weaknesses = componentNotes(s)

		if s.Ratios.RemainingCash > 0 {
			left := currency.Format(in.Data.Currency, decimal.NewFromFloat(s.Ratios.RemainingCash))
			n.OpportunityAreas = append(n.OpportunityAreas, fmt.Sprintf("%s is left over this month. Moving part of it to savings raises your score.", left))
		}
	}

	for _, tip := range in.Tips {
		n.Recommendations = append(n.Recommendations, fmt.Sprintf("%s: %s", tip.Title, tip.Description))
	}

	if in.Trend != nil {
		n.TrendAnalysis = fmt.Sprintf("Your average month score moved from %d to %d, the trend is %s.",
			in.Trend.PreviousAverage, in.Trend.CurrentAverage, in.Trend.Trend)
	}

	return n
}

// componentNotes lists strengths and weaknesses from the scored components.
func componentNotes(s health.PrimaryHealthScore) (strengths, weaknesses []string) {
	c := s.Components
	strengths = []string{}
	weaknesses = []string{}

	if c.Cashflow >= 0.75*health.MaxCashflow {
		strengths = append(strengths, "Your spending stays well below your income.")
	} else if c.Cashflow < 0.5*health.MaxCashflow {
		weaknesses = append(weaknesses, "Spending takes up most of your income.")
	}

	if c.Discipline >= 15 {
		strengths = append(strengths, "You save or invest a healthy share of your income.")
	} else if c.Discipline < 10 {
		weaknesses = append(weaknesses, "Little of your income goes to savings or investments.")
	}

	if c.Debt >= 20 {
		strengths = append(strengths, "Your debt payments are under control.")
	} else if c.Debt < 15 {
		weaknesses = append(weaknesses, "Debt payments weigh heavily on your income.")
	}

	if c.Trend >= 8 {
		strengths = append(strengths, "Your finances improved compared to last month.")
	}

	if c.EmergencyBonus > 0 {
		strengths = append(strengths, "You keep an emergency fund.")
	} else if s.Ratios.EmergencyMonths < 1 {
		weaknesses = append(weaknesses, "Your emergency fund covers less than one month of expenses.")
	}

	return strengths, weaknesses
}
