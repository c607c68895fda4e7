package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/moneyhealth/backend/internal/ledger"
	"github.com/moneyhealth/backend/internal/models"
)

func (suite *TestSuiteStandard) TestLoadLedger() {
	profile := suite.createTestProfile(models.Profile{Name: "Sam"})
	other := suite.createTestProfile(models.Profile{})
	debt := suite.createTestDebt(models.Debt{ProfileID: profile.ID, Total: d(500), Monthly: d(50)})

	_ = suite.createTestTransaction(models.Transaction{ProfileID: profile.ID, Type: ledger.TypeSalary, Amount: d(2000), Date: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)})
	_ = suite.createTestTransaction(models.Transaction{ProfileID: profile.ID, Type: ledger.TypeDebtPayment, Amount: d(50), DebtID: &debt.ID, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
	_ = suite.createTestTransaction(models.Transaction{ProfileID: other.ID, Amount: d(1)})

	l, err := models.LoadLedger(models.DB, profile.ID)
	suite.Require().Nil(err)

	suite.Assert().Equal("Sam", l.Profile.Name)
	suite.Require().Len(l.Entries, 2)
	suite.Assert().Equal(ledger.TypeDebtPayment, l.Entries[0].Type, "entries are sorted by date")
	suite.Require().Len(l.Debts, 1)

	s := ledger.Replay(l.Entries, l.Debts, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	suite.Assert().True(s.Cash.Equal(d(1950)), s.Cash.String())
	suite.Assert().True(s.Debt.Equal(d(450)), s.Debt.String())
}

func (suite *TestSuiteStandard) TestLoadLedgerUnknownProfile() {
	_, err := models.LoadLedger(models.DB, uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	err := models.DB.Create(&models.Profile{}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
