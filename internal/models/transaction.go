package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moneyhealth/backend/internal/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single ledger record.
type Transaction struct {
	DefaultModel
	Profile     Profile   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ProfileID   uuid.UUID `gorm:"index"`
	Type        ledger.Type
	Date        time.Time `gorm:"index"`
	Category    string
	SubCategory string
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Debt        *Debt           `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	DebtID      *uuid.UUID
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Type = ledger.Type(strings.ToLower(strings.TrimSpace(string(t.Type))))
	t.Category = strings.TrimSpace(t.Category)
	t.SubCategory = strings.TrimSpace(t.SubCategory)
	t.Description = strings.TrimSpace(t.Description)
	t.Date = t.Date.UTC()

	return nil
}

// AfterFind sets the date to UTC in addition to the timestamps.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	t.Date = t.Date.In(time.UTC)
	return t.DefaultModel.AfterFind(tx)
}

func (t *Transaction) AfterSave(_ *gorm.DB) error {
	if _, err := ledger.ParseType(string(t.Type)); err != nil {
		return err
	}

	if t.Amount.IsNegative() {
		return ErrTransactionAmountNegative
	}

	if t.Date.IsZero() {
		return ErrTransactionDateMissing
	}

	if t.DebtID != nil && *t.DebtID != uuid.Nil && t.Type != ledger.TypeDebtPayment {
		return ErrTransactionDebtIDWrongType
	}

	return nil
}

// Entry returns the ledger representation.
func (t Transaction) Entry() ledger.Entry {
	return ledger.Entry{
		ID:          t.ID,
		Type:        t.Type,
		Date:        t.Date,
		Category:    t.Category,
		SubCategory: t.SubCategory,
		Description: t.Description,
		Amount:      t.Amount,
		DebtID:      t.DebtID,
	}
}
