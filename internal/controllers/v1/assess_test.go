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
	"github.com/moneyhealth/backend/internal/types"
	"github.com/moneyhealth/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assessProfile creates a profile with June 2024 income of 2000 and
// expenses of 1800.
func assessProfile(t *testing.T) v1.ProfileResponse {
	profile := createTestProfile(t, v1.ProfileEditable{Name: "Household"})
	june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	record(t, profile.Data.ID, ledger.TypeSalary, 2000, june)
	record(t, profile.Data.ID, ledger.TypeExpense, 1800, june)

	return profile
}

func (suite *TestSuiteStandard) TestAssess() {
	profile := assessProfile(suite.T())

	tests := []struct {
		name    string
		request v1.AssessRequest
		level   health.RiskLevel
	}{
		{"Overspending", v1.AssessRequest{Type: ledger.TypeExpense, Amount: decimal.NewFromFloat(300), Category: "Food", Month: types.NewMonth(2024, 6)}, health.RiskRed},
		{"Income", v1.AssessRequest{Type: ledger.TypeSalary, Amount: decimal.NewFromFloat(300), Month: types.NewMonth(2024, 6)}, health.RiskGreen},
		{"Month without income", v1.AssessRequest{Type: ledger.TypeExpense, Amount: decimal.NewFromFloat(10), Month: types.NewMonth(2024, 1)}, health.RiskRed},
		{"Type is case insensitive", v1.AssessRequest{Type: "Savings", Amount: decimal.NewFromFloat(50), Month: types.NewMonth(2024, 6)}, health.RiskGreen},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, profile.Data.Links.Assess, tt.request)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.AssessResponse
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Data)
			assert.Equal(t, tt.level, response.Data.RiskLevel)
			assert.Equal(t, tt.level != health.RiskGreen, response.Data.ShouldWarn)
			assert.Equal(t, advisor.SourceLocal, response.Data.Source)
			assert.NotEmpty(t, response.Data.Message)
		})
	}
}

func (suite *TestSuiteStandard) TestAssessDefaultsToCurrentMonth() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household"})
	record(suite.T(), profile.Data.ID, ledger.TypeSalary, 2000, time.Now().UTC())

	r := test.Request(suite.T(), http.MethodPost, profile.Data.Links.Assess, `{"type": "expense", "amount": 100}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AssessResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), health.RiskGreen, response.Data.RiskLevel)
	assert.InDelta(suite.T(), 0.05, response.Data.AmountRatio, 0.0001)
}

func (suite *TestSuiteStandard) TestAssessErrors() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household"})

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"Unknown type", profile.Data.Links.Assess, `{"type": "gift", "amount": 10}`, http.StatusBadRequest},
		{"Negative amount", profile.Data.Links.Assess, `{"type": "expense", "amount": -10}`, http.StatusBadRequest},
		{"Broken JSON", profile.Data.Links.Assess, `{"type": "expense"`, http.StatusBadRequest},
		{"Invalid month", profile.Data.Links.Assess, `{"type": "expense", "amount": 10, "month": "June"}`, http.StatusBadRequest},
		{"Invalid UUID", "http://example.com/v1/profiles/NotAUUID/assess", `{"type": "expense", "amount": 10}`, http.StatusBadRequest},
		{"Profile does not exist", fmt.Sprintf("http://example.com/v1/profiles/%s/assess", uuid.New()), `{"type": "expense", "amount": 10}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.AssessResponse
			test.DecodeResponse(t, &r, &response)
			assert.Nil(t, response.Data)
			assert.NotNil(t, response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestAssessRemote() {
	var received map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"title":   "Careful",
			"message": "This pushes your spending past your income.",
			// The risk level of the service is ignored
			"riskLevel": "green",
		})
	}))
	defer server.Close()

	v1.SetAdvisor(advisor.New(advisor.NewClient(server.URL, time.Second)))

	profile := assessProfile(suite.T())

	r := test.Request(suite.T(), http.MethodPost, profile.Data.Links.Assess, v1.AssessRequest{
		Type:     ledger.TypeExpense,
		Amount:   decimal.NewFromFloat(300),
		Category: "Food",
		Month:    types.NewMonth(2024, 6),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AssessResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), advisor.SourceAI, response.Data.Source)
	assert.Equal(suite.T(), "Careful", response.Data.Title)
	assert.Equal(suite.T(), "This pushes your spending past your income.", response.Data.Message)
	assert.Equal(suite.T(), health.RiskRed, response.Data.RiskLevel)
	assert.NotEmpty(suite.T(), response.Data.Recommendation)

	require.Contains(suite.T(), received, "transaction")
	assert.Equal(suite.T(), "expense", received["transaction"].(map[string]any)["type"])
}
