package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/moneyhealth/backend/internal/controllers/v1"
	"github.com/moneyhealth/backend/internal/models"
	"github.com/moneyhealth/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMatchRulesCreate() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household"})

	tests := []struct {
		name   string
		rule   v1.MatchRuleEditable
		status int
		err    string
	}{
		{"Valid", v1.MatchRuleEditable{ProfileID: profile.Data.ID, Match: " *rent* ", Category: "Housing"}, http.StatusCreated, ""},
		{"No match", v1.MatchRuleEditable{ProfileID: profile.Data.ID, Category: "Housing"}, http.StatusBadRequest, models.ErrMatchRuleMatchEmpty.Error()},
		{"No category", v1.MatchRuleEditable{ProfileID: profile.Data.ID, Match: "*"}, http.StatusBadRequest, models.ErrMatchRuleCategoryEmpty.Error()},
		{"Profile does not exist", v1.MatchRuleEditable{ProfileID: uuid.New(), Match: "*", Category: "Any"}, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			m := createTestMatchRule(t, tt.rule, tt.status)

			if tt.status == http.StatusCreated {
				assert.Equal(t, "*rent*", m.Data.Match)
				return
			}

			require.NotNil(t, m.Error)
			if tt.err != "" {
				assert.Equal(t, tt.err, *m.Error)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestMatchRulesGetFilter() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Household"})
	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{ProfileID: profile.Data.ID, Priority: 1, Match: "*rent*", Category: "Housing"})
	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{ProfileID: profile.Data.ID, Priority: 2, Match: "*market*", Category: "Food"})
	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{Priority: 1, Match: "*bakery*", Category: "Food"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Profile", fmt.Sprintf("profile=%s", profile.Data.ID), 2},
		{"Priority", "priority=1", 2},
		{"Category", "category=Food", 2},
		{"Match", "match=market", 1},
		{"Offset", "offset=1", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/match-rules?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.MatchRuleListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestMatchRulesUpdateDelete() {
	m := createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "*rent*", Category: "Housing"})

	r := test.Request(suite.T(), http.MethodPatch, m.Data.Links.Self, map[string]any{"category": "Home", "priority": 4})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MatchRuleResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Home", response.Data.Category)
	assert.Equal(suite.T(), uint(4), response.Data.Priority)
	assert.Equal(suite.T(), "*rent*", response.Data.Match)

	r = test.Request(suite.T(), http.MethodPatch, m.Data.Links.Self, map[string]any{"match": ""})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodDelete, m.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, m.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
