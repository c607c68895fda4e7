package v1

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moneyhealth/backend/internal/models"
	"github.com/shopspring/decimal"
)

type ProfileEditable struct {
	Name            string          `json:"name" example:"Household"`                  // Name of the profile
	Note            string          `json:"note" example:"Shared finances with Alex"`  // A longer description of the profile
	Currency        string          `json:"currency" example:"EUR" default:"EUR"`      // ISO 4217 code of the profile currency
	TargetSavings   decimal.Decimal `json:"targetSavings" example:"500" default:"0"`   // Monthly savings target
	TargetInvesting decimal.Decimal `json:"targetInvesting" example:"200" default:"0"` // Monthly investing target
}

func (editable ProfileEditable) model() models.Profile {
	return models.Profile{
		Name:            editable.Name,
		Note:            editable.Note,
		Currency:        editable.Currency,
		TargetSavings:   editable.TargetSavings,
		TargetInvesting: editable.TargetInvesting,
	}
}

type ProfileLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/profiles/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                     // The profile itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?profile=550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // Transactions of this profile
	Debts        string `json:"debts" example:"https://example.com/api/v1/debts?profile=550dc009-cea6-4c12-b2a5-03446eb7b7cf"`               // Debts of this profile
	MatchRules   string `json:"matchRules" example:"https://example.com/api/v1/match-rules?profile=550dc009-cea6-4c12-b2a5-03446eb7b7cf"`    // Match rules of this profile
	Month        string `json:"month" example:"https://example.com/api/v1/profiles/550dc009-cea6-4c12-b2a5-03446eb7b7cf/months/YYYY-MM"`     // This uses 'YYYY-MM' for clients to replace with the actual year and month.
	Assess       string `json:"assess" example:"https://example.com/api/v1/profiles/550dc009-cea6-4c12-b2a5-03446eb7b7cf/assess"`            // Risk assessment for new transactions
}

// Profile is the API representation of a Profile.
type Profile struct {
	models.DefaultModel
	ProfileEditable
	Links ProfileLinks `json:"links"`
}

func newProfile(c *gin.Context, model models.Profile) Profile {
	url := c.GetString(string(models.DBContextURL))

	return Profile{
		DefaultModel: model.DefaultModel,
		ProfileEditable: ProfileEditable{
			Name:            model.Name,
			Note:            model.Note,
			Currency:        model.Currency,
			TargetSavings:   model.TargetSavings,
			TargetInvesting: model.TargetInvesting,
		},
		Links: ProfileLinks{
			Self:         fmt.Sprintf("%s/v1/profiles/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?profile=%s", url, model.ID),
			Debts:        fmt.Sprintf("%s/v1/debts?profile=%s", url, model.ID),
			MatchRules:   fmt.Sprintf("%s/v1/match-rules?profile=%s", url, model.ID),
			Month:        fmt.Sprintf("%s/v1/profiles/%s/months/YYYY-MM", url, model.ID),
			Assess:       fmt.Sprintf("%s/v1/profiles/%s/assess", url, model.ID),
		},
	}
}

type ProfileListResponse struct {
	Data       []Profile   `json:"data"`                                                          // List of profiles
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ProfileCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []ProfileResponse `json:"data"`                                                          // List of created Profiles
}

func (b *ProfileCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, ProfileResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ProfileResponse struct {
	Data  *Profile `json:"data"`                                                          // Data for the profile
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ProfileQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	Currency string `form:"currency"`                   // By currency
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Profile returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Profiles to return. Defaults to 50.
}

func (f ProfileQueryFilter) model() models.Profile {
	return models.Profile{
		Currency: strings.ToUpper(f.Currency),
	}
}
