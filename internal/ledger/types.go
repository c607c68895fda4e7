// Package ledger turns raw transactions into monthly totals, breakdowns and
// account balances.
//
// Everything here is a pure function of its input. Balances are derived by
// replaying the transaction list and are never stored.
package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moneyhealth/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// ErrTypeInvalid is returned by ParseType for unknown transaction types.
var ErrTypeInvalid = errors.New("the transaction type must be one of income, salary, business, freelance, investments, side_hustle, expense, savings, investing, debt_payment, emergency_fund, cash_adjustment")

// Type is the kind of a transaction.
type Type string

const (
	TypeIncome         Type = "income"
	TypeSalary         Type = "salary"
	TypeBusiness       Type = "business"
	TypeFreelance      Type = "freelance"
	TypeInvestments    Type = "investments"
	TypeSideHustle     Type = "side_hustle"
	TypeExpense        Type = "expense"
	TypeSavings        Type = "savings"
	TypeInvesting      Type = "investing"
	TypeDebtPayment    Type = "debt_payment"
	TypeEmergencyFund  Type = "emergency_fund"
	TypeCashAdjustment Type = "cash_adjustment"
)

// Types lists all valid transaction types.
var Types = []Type{
	TypeIncome, TypeSalary, TypeBusiness, TypeFreelance, TypeInvestments, TypeSideHustle,
	TypeExpense, TypeSavings, TypeInvesting, TypeDebtPayment, TypeEmergencyFund, TypeCashAdjustment,
}

var incomeTypes = []Type{TypeIncome, TypeSalary, TypeBusiness, TypeFreelance, TypeInvestments, TypeSideHustle}

// ParseType parses a transaction type case-insensitively.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Types, t) {
		return "", ErrTypeInvalid
	}

	return t, nil
}

// normalized returns the lower case form used for bucket matching.
func (t Type) normalized() Type {
	return Type(strings.ToLower(string(t)))
}

// IsIncome reports whether transactions of this type count as income.
func (t Type) IsIncome() bool {
	return slices.Contains(incomeTypes, t.normalized())
}

// Entry is a single ledger transaction.
type Entry struct {
	ID          uuid.UUID
	Type        Type
	Date        time.Time
	Category    string
	SubCategory string
	Description string
	Amount      decimal.Decimal
	DebtID      *uuid.UUID
}

// Totals are the per-bucket sums of a month.
type Totals struct {
	Income    decimal.Decimal `json:"income" example:"3000"`
	Expenses  decimal.Decimal `json:"expenses" example:"1800"`
	Savings   decimal.Decimal `json:"savings" example:"300"`
	Investing decimal.Decimal `json:"investing" example:"0"`
	DebtPay   decimal.Decimal `json:"debtPay" example:"0"`
}

// IsZero reports whether the month has no activity in any bucket.
func (t Totals) IsZero() bool {
	return t.Income.Add(t.Expenses).Add(t.Savings).Add(t.Investing).Add(t.DebtPay).IsZero()
}

// Breakdown maps a breakdown key to the summed amount.
type Breakdown map[string]decimal.Decimal

// Month is the aggregated data for one calendar month.
type Month struct {
	Month            types.Month
	Totals           Totals
	Entries          []Entry
	IncomeBreakdown  Breakdown
	ExpenseBreakdown Breakdown
}

// IsEmpty reports whether the month contains no data.
func (m Month) IsEmpty() bool {
	return m.Totals.IsZero()
}

// Debt is a liability of the user.
type Debt struct {
	ID      uuid.UUID
	Type    string
	Name    string
	Total   decimal.Decimal
	Monthly decimal.Decimal
}

// Snapshot is the state of all balances at a point in time.
type Snapshot struct {
	Cash      decimal.Decimal `json:"cash" example:"1200"`
	Emergency decimal.Decimal `json:"emergency" example:"3000"`
	Savings   decimal.Decimal `json:"savings" example:"5000"`
	Investing decimal.Decimal `json:"investing" example:"2500"`
	Debt      decimal.Decimal `json:"debt" example:"8000"`
}

// Balance is the sum of all asset balances. Debt is not subtracted.
func (s Snapshot) Balance() decimal.Decimal {
	return s.Cash.Add(s.Emergency).Add(s.Savings).Add(s.Investing)
}
