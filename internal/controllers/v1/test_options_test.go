package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/moneyhealth/backend/internal/controllers/v1"
	"github.com/moneyhealth/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsHeaderResources() {
	optionsHeaderTests := []struct {
		path     string
		response string
	}{
		{"http://example.com/v1", "OPTIONS, GET"},
		{"http://example.com/v1/profiles", "OPTIONS, GET, POST"},
		{"http://example.com/v1/transactions", "OPTIONS, GET, POST"},
		{"http://example.com/v1/debts", "OPTIONS, GET, POST"},
		{"http://example.com/v1/match-rules", "OPTIONS, GET, POST"},
		{fmt.Sprintf("http://example.com/v1/profiles/%s/months/2024-06", uuid.New()), "OPTIONS, GET"},
		{fmt.Sprintf("http://example.com/v1/profiles/%s/months/2024-06/report", uuid.New()), "OPTIONS, GET"},
		{fmt.Sprintf("http://example.com/v1/profiles/%s/assess", uuid.New()), "OPTIONS, POST"},
	}

	for _, tt := range optionsHeaderTests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(t, http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, tt.response, recorder.Header().Get("allow"))
		})
	}
}

// TestOptionsDetail verifies the OPTIONS response for single resources.
func (suite *TestSuiteStandard) TestOptionsDetail() {
	profile := createTestProfile(suite.T(), v1.ProfileEditable{Name: "Options"})

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Profile", profile.Data.Links.Self, http.StatusNoContent},
		{"Does not exist", fmt.Sprintf("http://example.com/v1/profiles/%s", uuid.New()), http.StatusNotFound},
		{"Invalid UUID", "http://example.com/v1/debts/NotParseableAsUUID", http.StatusBadRequest},
		{"Transaction does not exist", fmt.Sprintf("http://example.com/v1/transactions/%s", uuid.New()), http.StatusNotFound},
		{"Match rule does not exist", fmt.Sprintf("http://example.com/v1/match-rules/%s", uuid.New()), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}
