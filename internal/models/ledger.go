package models

import (
	"github.com/google/uuid"
	"github.com/moneyhealth/backend/internal/ledger"
	"gorm.io/gorm"
)

// Ledger is the complete data of a profile in the form the scorers use.
type Ledger struct {
	Profile Profile
	Entries []ledger.Entry
	Debts   []ledger.Debt
}

// LoadLedger reads the profile with all of its transactions and debts.
func LoadLedger(tx *gorm.DB, profileID uuid.UUID) (Ledger, error) {
	var profile Profile
	err := tx.First(&profile, profileID).Error
	if err != nil {
		return Ledger{}, err
	}

	var transactions []Transaction
	err = tx.Where(&Transaction{ProfileID: profileID}).Order("datetime(date) ASC, datetime(created_at) ASC").Find(&transactions).Error
	if err != nil {
		return Ledger{}, err
	}

	var debts []Debt
	err = tx.Where(&Debt{ProfileID: profileID}).Order("created_at ASC").Find(&debts).Error
	if err != nil {
		return Ledger{}, err
	}

	l := Ledger{
		Profile: profile,
		Entries: make([]ledger.Entry, 0, len(transactions)),
		Debts:   make([]ledger.Debt, 0, len(debts)),
	}

	for _, t := range transactions {
		l.Entries = append(l.Entries, t.Entry())
	}

	for _, d := range debts {
		l.Debts = append(l.Debts, d.Ledger())
	}

	return l, nil
}
