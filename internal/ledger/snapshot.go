package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Replay folds all entries dated before until into a Snapshot. A zero until
// replays everything.
//
// Debt is the sum of all remaining debt totals, see Remaining.
func Replay(entries []Entry, debts []Debt, until time.Time) Snapshot {
	s := Snapshot{}

	var applied []Entry
	for _, e := range entries {
		if e.Amount.IsNegative() {
			continue
		}

		if !until.IsZero() && !e.Date.Before(until) {
			continue
		}
		applied = append(applied, e)

		switch t := e.Type.normalized(); {
		case t.IsIncome(), t == TypeCashAdjustment:
			s.Cash = s.Cash.Add(e.Amount)
		case t == TypeExpense, t == TypeDebtPayment:
			s.Cash = s.Cash.Sub(e.Amount)
		case t == TypeSavings:
			s.Cash = s.Cash.Sub(e.Amount)
			s.Savings = s.Savings.Add(e.Amount)
		case t == TypeInvesting:
			s.Cash = s.Cash.Sub(e.Amount)
			s.Investing = s.Investing.Add(e.Amount)
		case t == TypeEmergencyFund:
			s.Cash = s.Cash.Sub(e.Amount)
			s.Emergency = s.Emergency.Add(e.Amount)
		}
	}

	for _, remaining := range Remaining(applied, debts) {
		s.Debt = s.Debt.Add(remaining)
	}

	return s
}

// Remaining returns the outstanding amount per debt: the debt total minus
// all debt payments linked to it, never below zero.
func Remaining(entries []Entry, debts []Debt) map[uuid.UUID]decimal.Decimal {
	paid := make(map[uuid.UUID]decimal.Decimal)
	for _, e := range entries {
		if e.DebtID == nil || e.Type.normalized() != TypeDebtPayment || e.Amount.IsNegative() {
			continue
		}
		paid[*e.DebtID] = paid[*e.DebtID].Add(e.Amount)
	}

	remaining := make(map[uuid.UUID]decimal.Decimal, len(debts))
	for _, d := range debts {
		r := d.Total.Sub(paid[d.ID])
		if r.IsNegative() {
			r = decimal.Zero
		}
		remaining[d.ID] = r
	}

	return remaining
}

// MonthlyObligation is the sum of the monthly payments of all debts.
func MonthlyObligation(debts []Debt) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range debts {
		sum = sum.Add(d.Monthly)
	}
	return sum
}

// HasDebt reports whether any debt has an outstanding total or a monthly payment.
func HasDebt(debts []Debt) bool {
	for _, d := range debts {
		if d.Total.IsPositive() || d.Monthly.IsPositive() {
			return true
		}
	}
	return false
}

// Outstanding returns the debts as they stand at until: Total is replaced by
// the remaining amount and a repaid debt no longer carries a monthly payment.
// A debt recorded without a total is never considered repaid.
func Outstanding(entries []Entry, debts []Debt, until time.Time) []Debt {
	var applied []Entry
	for _, e := range entries {
		if until.IsZero() || e.Date.Before(until) {
			applied = append(applied, e)
		}
	}

	remaining := Remaining(applied, debts)
	out := make([]Debt, 0, len(debts))
	for _, d := range debts {
		repaid := d.Total.IsPositive() && !remaining[d.ID].IsPositive()
		d.Total = remaining[d.ID]
		if repaid {
			d.Monthly = decimal.Zero
		}
		out = append(out, d)
	}

	return out
}
