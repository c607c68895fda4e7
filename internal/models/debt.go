package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/moneyhealth/backend/internal/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DebtTypeInstallment marks debts whose monthly payment is replaced, not
// summed, when an installment is recorded.
const DebtTypeInstallment = "installment"

// Debt is a liability with a total and a monthly payment.
type Debt struct {
	DefaultModel
	Profile   Profile   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ProfileID uuid.UUID `gorm:"index"`
	Type      string    // Kind of debt, e.g. "loan", "credit_card" or "installment"
	Name      string
	Total     decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Original amount owed
	Monthly   decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Expected monthly payment
}

func (d *Debt) BeforeSave(_ *gorm.DB) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Type = strings.ToLower(strings.TrimSpace(d.Type))

	return nil
}

func (d *Debt) AfterSave(_ *gorm.DB) error {
	if d.Name == "" {
		return ErrDebtNameEmpty
	}

	if d.Total.IsNegative() || d.Monthly.IsNegative() {
		return ErrDebtAmountNegative
	}

	return nil
}

// Ledger returns the ledger representation.
func (d Debt) Ledger() ledger.Debt {
	return ledger.Debt{
		ID:      d.ID,
		Type:    d.Type,
		Name:    d.Name,
		Total:   d.Total,
		Monthly: d.Monthly,
	}
}
