package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/moneyhealth/backend/internal/controllers/v1"
	"github.com/moneyhealth/backend/internal/ledger"
	"github.com/moneyhealth/backend/internal/models"
	"github.com/moneyhealth/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestProfilesDatabaseError verifies that the endpoints return the appropriate
// error when the database is disconnected.
func (suite *TestSuiteStandard) TestProfilesDatabaseError() {
	tests := []struct {
		name   string
		path   string
		method string
	}{
		{"GET Collection", "", http.MethodGet},
		{"OPTIONS Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodOptions},
		{"GET Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodGet},
		{"PATCH Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodPatch},
		{"DELETE Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/profiles%s", tt.path), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)
			assert.Contains(t, recorder.Body.String(), models.ErrGeneral.Error())
		})
	}
}

func (suite *TestSuiteStandard) TestProfilesCreate() {
	tests := []struct {
		name     string
		profiles []v1.ProfileEditable
		status   int
		errors   []string
	}{
		{
			"Defaults",
			[]v1.ProfileEditable{{Name: "Household"}},
			http.StatusCreated,
			[]string{""},
		},
		{
			"Invalid currency",
			[]v1.ProfileEditable{{Name: "Valid"}, {Name: "Invalid", Currency: "EURO"}},
			http.StatusBadRequest,
			[]string{"", models.ErrProfileCurrencyInvalid.Error()},
		},
		{
			"Negative target",
			[]v1.ProfileEditable{{Name: "Negative", TargetSavings: decimal.NewFromFloat(-1)}},
			http.StatusBadRequest,
			[]string{models.ErrProfileTargetNegative.Error()},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/profiles", tt.profiles)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.ProfileCreateResponse
			test.DecodeResponse(t, &r, &response)

			for i, e := range tt.errors {
				if e == "" {
					assert.Nil(t, response.Data[i].Error)
					continue
				}
				assert.Equal(t, e, *response.Data[i].Error)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestProfilesCreateBrokenJSON() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/profiles", `[{ "name": 2 }]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestProfilesGet() {
	p := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household", Currency: "usd"})

	assert.Equal(suite.T(), "USD", p.Data.Currency)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/profiles/%s", p.Data.ID), p.Data.Links.Self)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/profiles/%s/months/YYYY-MM", p.Data.ID), p.Data.Links.Month)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/debts?profile=%s", p.Data.ID), p.Data.Links.Debts)

	r := test.Request(suite.T(), http.MethodGet, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ProfileResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Household", response.Data.Name)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/profiles/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "there is no profile matching your query", *response.Error)
}

func (suite *TestSuiteStandard) TestProfilesGetFilter() {
	_ = createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household", Note: "Shared", Currency: "EUR"})
	_ = createTestProfile(suite.T(), v1.ProfileEditable{Name: "Travel", Note: "Trips abroad", Currency: "USD"})
	_ = createTestProfile(suite.T(), v1.ProfileEditable{Name: "Side business", Currency: "USD"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Currency", "currency=usd", 2},
		{"Name", "name=Travel", 1},
		{"Empty note", "note=", 1},
		{"Search", "search=shared", 1},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/profiles?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ProfileListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
			assert.Equal(t, tt.len, response.Pagination.Count)
		})
	}
}

func (suite *TestSuiteStandard) TestProfilesUpdate() {
	p := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household", Note: "Shared"})

	r := test.Request(suite.T(), http.MethodPatch, p.Data.Links.Self, map[string]any{
		"name":          "Home",
		"targetSavings": 400,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ProfileResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Home", response.Data.Name)
	assert.Equal(suite.T(), "Shared", response.Data.Note, "Fields not in the body must not change")
	assert.True(suite.T(), decimal.NewFromFloat(400).Equal(response.Data.TargetSavings))

	r = test.Request(suite.T(), http.MethodPatch, p.Data.Links.Self, `{"currency": "XXXX"}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPatch, p.Data.Links.Self, `{"name": 5}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestProfilesDelete() {
	p := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household"})
	t := createTestTransaction(suite.T(), v1.TransactionEditable{ProfileID: p.Data.ID, Type: ledger.TypeSalary, Amount: decimal.NewFromFloat(100)})
	d := createTestDebt(suite.T(), v1.DebtEditable{ProfileID: p.Data.ID, Name: "Loan", Total: decimal.NewFromFloat(1000)})

	r := test.Request(suite.T(), http.MethodDelete, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// Ledger data is removed with the profile
	for _, link := range []string{p.Data.Links.Self, t.Data.Links.Self, d.Data.Links.Self} {
		r = test.Request(suite.T(), http.MethodGet, link, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	}

	r = test.Request(suite.T(), http.MethodDelete, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	assert.True(suite.T(), strings.HasPrefix(r.Body.String(), `{"error":`))
}
