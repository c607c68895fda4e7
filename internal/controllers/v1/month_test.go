package v1_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/moneyhealth/backend/internal/advisor"
	v1 "github.com/moneyhealth/backend/internal/controllers/v1"
	"github.com/moneyhealth/backend/internal/health"
	"github.com/moneyhealth/backend/internal/ledger"
	"github.com/moneyhealth/backend/internal/models"
	"github.com/moneyhealth/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceMonth creates a profile with June 2024 income of 3000, expenses
// of 1800 and savings of 300 and returns the link to that month.
func referenceMonth(t *testing.T) (v1.ProfileResponse, string) {
	profile := createTestProfile(t, v1.ProfileEditable{Name: "Household"})
	june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_ = createTestTransaction(t, v1.TransactionEditable{ProfileID: profile.Data.ID, Type: ledger.TypeSalary, Date: june, Category: "Job", Amount: decimal.NewFromFloat(3000)})
	_ = createTestTransaction(t, v1.TransactionEditable{ProfileID: profile.Data.ID, Type: ledger.TypeExpense, Date: june.AddDate(0, 0, 4), Category: "Housing", SubCategory: "Rent", Amount: decimal.NewFromFloat(1200)})
	_ = createTestTransaction(t, v1.TransactionEditable{ProfileID: profile.Data.ID, Type: ledger.TypeExpense, Date: june.AddDate(0, 0, 9), Category: "Food", Amount: decimal.NewFromFloat(600)})
	_ = createTestTransaction(t, v1.TransactionEditable{ProfileID: profile.Data.ID, Type: ledger.TypeSavings, Date: june.AddDate(0, 0, 20), Amount: decimal.NewFromFloat(300)})

	return profile, fmt.Sprintf("%s/months/2024-06", profile.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestMonthsErrors() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household"})

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Invalid month", fmt.Sprintf("%s/months/2024-13", profile.Data.Links.Self), http.StatusBadRequest},
		{"Not a month", fmt.Sprintf("%s/months/June", profile.Data.Links.Self), http.StatusBadRequest},
		{"Invalid UUID", "http://example.com/v1/profiles/NotAUUID/months/2024-06", http.StatusBadRequest},
		{"Profile does not exist", fmt.Sprintf("http://example.com/v1/profiles/%s/months/2024-06", uuid.New()), http.StatusNotFound},
		{"Health for profile that does not exist", fmt.Sprintf("http://example.com/v1/profiles/%s/months/2024-06/health", uuid.New()), http.StatusNotFound},
		{"Report for invalid month", fmt.Sprintf("%s/months/24-06/report", profile.Data.Links.Self), http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, tt.path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.MonthResponse
			test.DecodeResponse(t, &r, &response)
			assert.NotNil(t, response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsDatabaseError() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household"})
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("%s/months/2024-06", profile.Data.Links.Self), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrGeneral.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestMonthsGet() {
	profile, link := referenceMonth(suite.T())
	debt := createTestDebt(suite.T(), v1.DebtEditable{ProfileID: profile.Data.ID, Name: "Car", Total: decimal.NewFromFloat(5000), Monthly: decimal.NewFromFloat(250)})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		ProfileID: profile.Data.ID,
		Type:      ledger.TypeDebtPayment,
		Date:      time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromFloat(250),
		DebtID:    &debt.Data.ID,
	})

	r := test.Request(suite.T(), http.MethodGet, link, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)
	month := response.Data

	assert.Equal(suite.T(), "2024-06", month.Month.String())
	assert.Equal(suite.T(), "EUR", month.Currency)
	assert.True(suite.T(), decimal.NewFromFloat(3000).Equal(month.Totals.Income))
	assert.True(suite.T(), decimal.NewFromFloat(1800).Equal(month.Totals.Expenses))
	assert.True(suite.T(), decimal.NewFromFloat(300).Equal(month.Totals.Savings))
	assert.Len(suite.T(), month.ExpenseBreakdown, 2)
	assert.Len(suite.T(), month.IncomeBreakdown, 1)

	// The July payment is not part of the June snapshot
	assert.True(suite.T(), decimal.NewFromFloat(900).Equal(month.Snapshot.Cash), "cash is %s", month.Snapshot.Cash)
	assert.True(suite.T(), decimal.NewFromFloat(300).Equal(month.Snapshot.Savings))
	assert.True(suite.T(), decimal.NewFromFloat(5000).Equal(month.Snapshot.Debt))
	require.Len(suite.T(), month.Debts, 1)
	assert.True(suite.T(), decimal.NewFromFloat(5000).Equal(month.Debts[0].Remaining))

	assert.Equal(suite.T(), link, month.Links.Self)
	assert.Equal(suite.T(), link+"/health", month.Links.Health)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/transactions?profile=%s&month=2024-06", profile.Data.ID), month.Links.Transactions)
}

func (suite *TestSuiteStandard) TestMonthsGetEmpty() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household", Currency: "USD"})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("%s/months/2024-06", profile.Data.Links.Self), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Totals.IsZero())
	assert.NotNil(suite.T(), response.Data.IncomeBreakdown)
	assert.NotNil(suite.T(), response.Data.Debts)
	assert.Equal(suite.T(), "USD", response.Data.Currency)
}

func (suite *TestSuiteStandard) TestMonthsHealth() {
	profile, link := referenceMonth(suite.T())

	r := test.Request(suite.T(), http.MethodGet, link+"/health", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.HealthResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 85, response.Data.Score)
	assert.Equal(suite.T(), health.StatusScored, response.Data.Status)
	assert.Equal(suite.T(), 40.0, response.Data.Components.Cashflow)

	// No data at all
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("%s/months/2023-01/health", profile.Data.Links.Self), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 0, response.Data.Score)
	assert.Equal(suite.T(), health.StatusNoData, response.Data.Status)
}

func (suite *TestSuiteStandard) TestMonthsHealthDebtWithoutTotal() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household"})
	_ = createTestDebt(suite.T(), v1.DebtEditable{ProfileID: profile.Data.ID, Type: "installment", Name: "Phone", Monthly: decimal.NewFromFloat(400)})
	record(suite.T(), profile.Data.ID, ledger.TypeSalary, 1000, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("%s/months/2024-06/health", profile.Data.Links.Self), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.HealthResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.InDelta(suite.T(), 400, response.Data.Ratios.EffectiveDebtPay, 0.0001)
	assert.InDelta(suite.T(), 0.4, response.Data.Ratios.DebtRatio, 0.0001)
	assert.Equal(suite.T(), 5.0, response.Data.Components.Discipline)
}

func (suite *TestSuiteStandard) TestMonthsBreakdown() {
	_, link := referenceMonth(suite.T())

	r := test.Request(suite.T(), http.MethodGet, link+"/breakdown", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BreakdownResponse
	test.DecodeResponse(suite.T(), &r, &response)

	s := response.Data
	assert.Equal(suite.T(), 15, s.IncomeScore, "No previous month")
	assert.True(suite.T(), s.FirstIncome)
	assert.Equal(suite.T(), 25, s.ExpenseScore)
	assert.Equal(suite.T(), 15, s.SavingsScore)
	assert.Equal(suite.T(), 25, s.DebtScore)
	assert.Equal(suite.T(), 15, s.AdherenceScore)
	assert.Equal(suite.T(), s.IncomeScore+s.ExpenseScore+s.SavingsScore+s.DebtScore+s.AdherenceScore, s.Total)
}

func (suite *TestSuiteStandard) TestMonthsTrend() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household"})

	// Without history, there is no trend
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("%s/months/2024-06/trend", profile.Data.Links.Self), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assert.JSONEq(suite.T(), `{"data": null, "error": null}`, r.Body.String())

	// Weak months from January to March, strong months from April to June
	for m := time.January; m <= time.June; m++ {
		date := time.Date(2024, m, 1, 0, 0, 0, 0, time.UTC)
		record(suite.T(), profile.Data.ID, ledger.TypeSalary, 1000, date)

		if m <= time.March {
			record(suite.T(), profile.Data.ID, ledger.TypeExpense, 1100, date)
			record(suite.T(), profile.Data.ID, ledger.TypeDebtPayment, 600, date)
			continue
		}
		record(suite.T(), profile.Data.ID, ledger.TypeExpense, 500, date)
		record(suite.T(), profile.Data.ID, ledger.TypeSavings, 250, date)
	}

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("%s/months/2024-06/trend", profile.Data.Links.Self), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TrendResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), health.DirectionImproving, response.Data.Trend)
	assert.Len(suite.T(), response.Data.CurrentMonths, 3)
	assert.Len(suite.T(), response.Data.PreviousMonths, 3)
	assert.Greater(suite.T(), response.Data.ChangePoints, 5)
}

func (suite *TestSuiteStandard) TestMonthsTips() {
	_, link := referenceMonth(suite.T())

	r := test.Request(suite.T(), http.MethodGet, link+"/tips", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TipsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotEmpty(suite.T(), response.Data)
	assert.Equal(suite.T(), "income", response.Data[0].Category)
	assert.Equal(suite.T(), "Keep recording your income", response.Data[0].Title)
	assert.Equal(suite.T(), "goals", response.Data[len(response.Data)-1].Category, "The profile has no targets")
}

func (suite *TestSuiteStandard) TestMonthsReportLocal() {
	_, link := referenceMonth(suite.T())

	r := test.Request(suite.T(), http.MethodGet, link+"/report", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), advisor.SourceLocal, response.Data.Health.Source)
	assert.Equal(suite.T(), 85, response.Data.Health.Score)
	assert.NotEmpty(suite.T(), response.Data.Health.Summary)
	assert.Equal(suite.T(), advisor.SourceLocal, response.Data.Recommendations.Source)
	assert.NotEmpty(suite.T(), response.Data.Recommendations.Tips)
}

func (suite *TestSuiteStandard) TestMonthsReportRemote() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/ai/health-score":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"score":   140,
				"rating":  "Excellent",
				"summary": "You are doing great.",
			})
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	v1.SetAdvisor(advisor.New(advisor.NewClient(server.URL, time.Second)))

	_, link := referenceMonth(suite.T())

	r := test.Request(suite.T(), http.MethodGet, link+"/report", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), advisor.SourceAI, response.Data.Health.Source)
	assert.Equal(suite.T(), 100, response.Data.Health.Score, "Scores out of range are clamped")
	assert.Equal(suite.T(), "You are doing great.", response.Data.Health.Summary)

	// The recommendations fall back to the local tips
	assert.Equal(suite.T(), advisor.SourceLocal, response.Data.Recommendations.Source)
	assert.NotEmpty(suite.T(), response.Data.Recommendations.Tips)
}
