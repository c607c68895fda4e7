package models

import (
	"strings"

	"github.com/moneyhealth/backend/internal/currency"
	"github.com/moneyhealth/backend/internal/health"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Profile owns all ledger data of one person.
type Profile struct {
	DefaultModel
	Name            string
	Note            string
	Currency        string
	TargetSavings   decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Monthly savings goal
	TargetInvesting decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Monthly investing goal
}

func (p *Profile) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Note = strings.TrimSpace(p.Note)

	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	if p.Currency == "" {
		p.Currency = currency.Default
	}

	return nil
}

func (p *Profile) AfterSave(_ *gorm.DB) error {
	if _, err := currency.Parse(p.Currency); err != nil {
		return ErrProfileCurrencyInvalid
	}

	if p.TargetSavings.IsNegative() || p.TargetInvesting.IsNegative() {
		return ErrProfileTargetNegative
	}

	return nil
}

// Targets returns the targets in the form used for tip generation.
func (p Profile) Targets() health.Targets {
	return health.Targets{
		Savings:   p.TargetSavings.InexactFloat64(),
		Investing: p.TargetInvesting.InexactFloat64(),
	}
}
