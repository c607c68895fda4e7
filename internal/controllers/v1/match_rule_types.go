package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneyhealth/backend/internal/models"
	mh_uuid "github.com/moneyhealth/backend/internal/uuid"
)

type MatchRuleEditable struct {
	ProfileID   uuid.UUID `json:"profileId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // The profile the match rule belongs to
	Priority    uint      `json:"priority" example:"3"`                                     // The priority of the match rule. Lower numbers are evaluated first.
	Match       string    `json:"match" example:"*supermarket*"`                            // Glob pattern matched against the transaction description, case-insensitive
	Category    string    `json:"category" example:"Food"`                                  // The category to assign
	SubCategory string    `json:"subCategory" example:"Groceries"`                          // The sub category to assign
}

func (editable MatchRuleEditable) model() models.MatchRule {
	return models.MatchRule{
		ProfileID:   editable.ProfileID,
		Priority:    editable.Priority,
		Match:       editable.Match,
		Category:    editable.Category,
		SubCategory: editable.SubCategory,
	}
}

type MatchRuleListResponse struct {
	Data       []MatchRule `json:"data"`                                                          // List of Match Rules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MatchRuleCreateResponse struct {
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []MatchRuleResponse `json:"data"`                                                          // List of created Match Rules
}

func (m *MatchRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MatchRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MatchRuleResponse struct {
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this Match Rule
	Data  *MatchRule `json:"data"`                                                          // The Match Rule data, if creation was successful
}

type MatchRuleLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/match-rules/95685c82-53c6-455d-b235-f49960b73b21"` // The match rule itself
	Profile string `json:"profile" example:"https://example.com/api/v1/profiles/550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // The profile of the match rule
}

// MatchRule is the API representation of a Match Rule.
type MatchRule struct {
	models.DefaultModel
	MatchRuleEditable
	Links MatchRuleLinks `json:"links"`
}

func newMatchRule(c *gin.Context, model models.MatchRule) MatchRule {
	url := c.GetString(string(models.DBContextURL))

	return MatchRule{
		DefaultModel: model.DefaultModel,
		MatchRuleEditable: MatchRuleEditable{
			ProfileID:   model.ProfileID,
			Priority:    model.Priority,
			Match:       model.Match,
			Category:    model.Category,
			SubCategory: model.SubCategory,
		},
		Links: MatchRuleLinks{
			Self:    fmt.Sprintf("%s/v1/match-rules/%s", url, model.ID),
			Profile: fmt.Sprintf("%s/v1/profiles/%s", url, model.ProfileID),
		},
	}
}

// MatchRuleQueryFilter contains the fields that Match Rules can be filtered with.
type MatchRuleQueryFilter struct {
	ProfileID mh_uuid.UUID `form:"profile"`                    // By ID of the profile
	Priority  uint         `form:"priority"`                   // By priority
	Match     string       `form:"match" filterField:"false"`  // By match
	Category  string       `form:"category"`                   // By category
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first Match Rule returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of Match Rules to return. Defaults to 50.
}

func (f MatchRuleQueryFilter) model() models.MatchRule {
	return models.MatchRule{
		ProfileID: f.ProfileID.UUID,
		Priority:  f.Priority,
		Category:  f.Category,
	}
}
