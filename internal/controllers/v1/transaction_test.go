package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/moneyhealth/backend/internal/controllers/v1"
	"github.com/moneyhealth/backend/internal/ledger"
	"github.com/moneyhealth/backend/internal/models"
	"github.com/moneyhealth/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTransactionsDatabaseError verifies that the endpoints return the appropriate
// error when the database is disconnected.
func (suite *TestSuiteStandard) TestTransactionsDatabaseError() {
	tests := []struct {
		name   string
		path   string
		method string
	}{
		{"GET Collection", "", http.MethodGet},
		{"GET Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodGet},
		{"PATCH Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodPatch},
		{"DELETE Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/transactions%s", tt.path), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)
			assert.Contains(t, recorder.Body.String(), models.ErrGeneral.Error())
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household"})
	other := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Other"})
	debt := createTestDebt(suite.T(), v1.DebtEditable{ProfileID: other.Data.ID, Name: "Loan", Total: decimal.NewFromFloat(500)})
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		transaction v1.TransactionEditable
		status      int
		err         string
	}{
		{
			"Income",
			v1.TransactionEditable{ProfileID: profile.Data.ID, Type: ledger.TypeSalary, Date: date, Amount: decimal.NewFromFloat(3000)},
			http.StatusCreated,
			"",
		},
		{
			"Type is normalized",
			v1.TransactionEditable{ProfileID: profile.Data.ID, Type: " Expense ", Date: date, Amount: decimal.NewFromFloat(10)},
			http.StatusCreated,
			"",
		},
		{
			"Unknown type",
			v1.TransactionEditable{ProfileID: profile.Data.ID, Type: "gift", Date: date, Amount: decimal.NewFromFloat(10)},
			http.StatusBadRequest,
			"",
		},
		{
			"Negative amount",
			v1.TransactionEditable{ProfileID: profile.Data.ID, Type: ledger.TypeExpense, Date: date, Amount: decimal.NewFromFloat(-10)},
			http.StatusBadRequest,
			models.ErrTransactionAmountNegative.Error(),
		},
		{
			"Missing date",
			v1.TransactionEditable{ProfileID: profile.Data.ID, Type: ledger.TypeExpense, Amount: decimal.NewFromFloat(10)},
			http.StatusBadRequest,
			models.ErrTransactionDateMissing.Error(),
		},
		{
			"Profile does not exist",
			v1.TransactionEditable{ProfileID: uuid.New(), Type: ledger.TypeExpense, Date: date, Amount: decimal.NewFromFloat(10)},
			http.StatusNotFound,
			"",
		},
		{
			"Debt of another profile",
			v1.TransactionEditable{ProfileID: profile.Data.ID, Type: ledger.TypeDebtPayment, Date: date, Amount: decimal.NewFromFloat(10), DebtID: &debt.Data.ID},
			http.StatusBadRequest,
			"the debt must belong to the same profile as the transaction",
		},
		{
			"Debt on an expense",
			v1.TransactionEditable{ProfileID: other.Data.ID, Type: ledger.TypeExpense, Date: date, Amount: decimal.NewFromFloat(10), DebtID: &debt.Data.ID},
			http.StatusBadRequest,
			models.ErrTransactionDebtIDWrongType.Error(),
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", []v1.TransactionEditable{tt.transaction})
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.TransactionCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)

			if tt.status == http.StatusCreated {
				assert.Nil(t, response.Data[0].Error)
				assert.Equal(t, "2024-06", response.Data[0].Data.Month)
				return
			}

			require.NotNil(t, response.Data[0].Error)
			if tt.err != "" {
				assert.Equal(t, tt.err, *response.Data[0].Error)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsCreateCategorizes() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household"})
	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{ProfileID: profile.Data.ID, Priority: 2, Match: "*market*", Category: "Shopping"})
	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{ProfileID: profile.Data.ID, Priority: 1, Match: "*supermarket*", Category: "Food", SubCategory: "Groceries"})

	tests := []struct {
		name        string
		description string
		category    string
		expected    string
		subCategory string
	}{
		{"Lowest priority number wins", "SUPERMARKET Main Street", "", "Food", "Groceries"},
		{"Second rule", "Flea market", "", "Shopping", ""},
		{"No rule matches", "Cinema", "", "", ""},
		{"Explicit category is kept", "Supermarket", "Gifts", "Gifts", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			transaction := createTestTransaction(t, v1.TransactionEditable{
				ProfileID:   profile.Data.ID,
				Description: tt.description,
				Category:    tt.category,
				Amount:      decimal.NewFromFloat(12),
			})

			assert.Equal(t, tt.expected, transaction.Data.Category)
			assert.Equal(t, tt.subCategory, transaction.Data.SubCategory)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household"})
	other := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Other"})
	debt := createTestDebt(suite.T(), v1.DebtEditable{ProfileID: profile.Data.ID, Name: "Loan", Total: decimal.NewFromFloat(5000)})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		ProfileID: profile.Data.ID, Type: ledger.TypeSalary, Date: time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromFloat(3000), Category: "Job",
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		ProfileID: profile.Data.ID, Type: ledger.TypeExpense, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromFloat(50), Category: "Food", Description: "Farmers market",
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		ProfileID: profile.Data.ID, Type: ledger.TypeDebtPayment, Date: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromFloat(200), DebtID: &debt.Data.ID,
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		ProfileID: other.Data.ID, Type: ledger.TypeExpense, Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromFloat(75), Category: "Food",
	})

	tests := []struct {
		name   string
		query  string
		len    int
		status int
	}{
		{"All", "", 4, http.StatusOK},
		{"Profile", fmt.Sprintf("profile=%s", profile.Data.ID), 3, http.StatusOK},
		{"Type", "type=expense", 2, http.StatusOK},
		{"Unknown type", "type=gift", 0, http.StatusBadRequest},
		{"Month", "month=2024-06", 3, http.StatusOK},
		{"Month and profile", fmt.Sprintf("month=2024-06&profile=%s", profile.Data.ID), 2, http.StatusOK},
		{"Invalid month", "month=June", 0, http.StatusBadRequest},
		{"From date", "fromDate=2024-06-10T00:00:00Z", 2, http.StatusOK},
		{"Until date", "untilDate=2024-06-01T12:00:00Z", 2, http.StatusOK},
		{"Category", "category=Food", 2, http.StatusOK},
		{"Description", "description=market", 1, http.StatusOK},
		{"Empty description", "description=", 3, http.StatusOK},
		{"Debt", fmt.Sprintf("debt=%s", debt.Data.ID), 1, http.StatusOK},
		{"Amount less or equal", "amountLessOrEqual=75", 2, http.StatusOK},
		{"Amount more or equal", "amountMoreOrEqual=200", 2, http.StatusOK},
		{"Limit", "limit=1", 1, http.StatusOK},
		{"Offset", "offset=3", 1, http.StatusOK},
		{"Invalid UUID", "profile=NotAUUID", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)

			if tt.status == http.StatusOK {
				assert.GreaterOrEqual(t, response.Pagination.Total, int64(tt.len))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetSorted() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household"})

	older := record(suite.T(), profile.Data.ID, ledger.TypeExpense, 1, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
	newer := record(suite.T(), profile.Data.ID, ledger.TypeExpense, 2, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?profile=%s", profile.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), newer.ID, response.Data[0].ID)
	assert.Equal(suite.T(), older.ID, response.Data[1].ID)
}

func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household"})
	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{ProfileID: profile.Data.ID, Match: "*rent*", Category: "Housing"})

	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		ProfileID:   profile.Data.ID,
		Description: "Misc",
		Amount:      decimal.NewFromFloat(900),
	})
	assert.Equal(suite.T(), "", transaction.Data.Category)

	// A new description re-runs the match rules
	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{"description": "Rent June"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Housing", response.Data.Category)
	assert.True(suite.T(), decimal.NewFromFloat(900).Equal(response.Data.Amount))

	// Updates that do not touch the categorization keep the category
	r = test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{"amount": 950, "date": "2024-07-01T00:00:00Z"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Housing", response.Data.Category)
	assert.Equal(suite.T(), "2024-07", response.Data.Month)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken JSON", `{"amount": "many"`, http.StatusBadRequest},
		{"Negative amount", map[string]any{"amount": -1}, http.StatusBadRequest},
		{"Unknown type", map[string]any{"type": "gift"}, http.StatusBadRequest},
		{"Profile does not exist", map[string]any{"profileId": uuid.New()}, http.StatusNotFound},
		{"Debt does not exist", map[string]any{"type": "debt_payment", "debtId": uuid.New()}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, transaction.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromFloat(10)})

	r := test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/transactions/NotAUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
