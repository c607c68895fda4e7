package ledger

import (
	"sort"

	"github.com/moneyhealth/backend/internal/types"
	"github.com/shopspring/decimal"
)

// BreakdownKey returns "category:subCategory", or just the category when
// there is no subcategory.
func BreakdownKey(category, subCategory string) string {
	if subCategory == "" {
		return category
	}

	return category + ":" + subCategory
}

// Aggregate sums the entries into totals and rebuilds both breakdowns from
// scratch. Negative amounts are ignored.
func Aggregate(entries []Entry) (Totals, Breakdown, Breakdown) {
	totals := Totals{}
	income := Breakdown{}
	expenses := Breakdown{}

	for _, e := range entries {
		if e.Amount.IsNegative() {
			continue
		}

		t := e.Type.normalized()
		switch {
		case t.IsIncome():
			totals.Income = totals.Income.Add(e.Amount)
			key := BreakdownKey(e.Category, e.SubCategory)
			income[key] = income[key].Add(e.Amount)
		case t == TypeExpense:
			totals.Expenses = totals.Expenses.Add(e.Amount)
			key := BreakdownKey(e.Category, e.SubCategory)
			expenses[key] = expenses[key].Add(e.Amount)
		case t == TypeSavings:
			totals.Savings = totals.Savings.Add(e.Amount)
		case t == TypeInvesting:
			totals.Investing = totals.Investing.Add(e.Amount)
		case t == TypeDebtPayment:
			totals.DebtPay = totals.DebtPay.Add(e.Amount)
		}
	}

	return totals, income, expenses
}

// NewMonth aggregates the entries that fall into month.
func NewMonth(month types.Month, entries []Entry) Month {
	var in []Entry
	for _, e := range entries {
		if month.Contains(e.Date.UTC()) {
			in = append(in, e)
		}
	}

	totals, income, expenses := Aggregate(in)
	return Month{
		Month:            month,
		Totals:           totals,
		Entries:          in,
		IncomeBreakdown:  income,
		ExpenseBreakdown: expenses,
	}
}

// GroupByMonth aggregates entries into one Month per calendar month that has
// at least one entry.
func GroupByMonth(entries []Entry) map[types.Month]Month {
	grouped := make(map[types.Month][]Entry)
	for _, e := range entries {
		m := types.MonthOf(e.Date.UTC())
		grouped[m] = append(grouped[m], e)
	}

	months := make(map[types.Month]Month, len(grouped))
	for m, list := range grouped {
		totals, income, expenses := Aggregate(list)
		months[m] = Month{
			Month:            m,
			Totals:           totals,
			Entries:          list,
			IncomeBreakdown:  income,
			ExpenseBreakdown: expenses,
		}
	}

	return months
}

// SortedKeys returns the breakdown keys ordered by descending amount, then
// by key.
func (b Breakdown) SortedKeys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if c := b[keys[i]].Cmp(b[keys[j]]); c != 0 {
			return c > 0
		}
		return keys[i] < keys[j]
	})

	return keys
}

// Sum returns the total over all keys.
func (b Breakdown) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range b {
		sum = sum.Add(v)
	}
	return sum
}
