package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneyhealth/backend/internal/ledger"
	"github.com/moneyhealth/backend/internal/models"
	mh_uuid "github.com/moneyhealth/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type DebtEditable struct {
	ProfileID uuid.UUID       `json:"profileId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the profile
	Type      string          `json:"type" example:"installment"`                               // Kind of debt. For "installment", the monthly payment is replaced on every update.
	Name      string          `json:"name" example:"Car loan"`                                  // Name of the debt
	Total     decimal.Decimal `json:"total" example:"12000" minimum:"0"`                        // Original amount owed
	Monthly   decimal.Decimal `json:"monthly" example:"350" minimum:"0"`                        // Expected monthly payment
}

func (editable DebtEditable) model() models.Debt {
	return models.Debt{
		ProfileID: editable.ProfileID,
		Type:      editable.Type,
		Name:      editable.Name,
		Total:     editable.Total,
		Monthly:   editable.Monthly,
	}
}

type DebtLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/debts/2e9b2f3c-1a52-4e2e-93a1-1a5d4a8e0c14"`                 // The debt itself
	Profile  string `json:"profile" example:"https://example.com/api/v1/profiles/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`           // The profile of the debt
	Payments string `json:"payments" example:"https://example.com/api/v1/transactions?debt=2e9b2f3c-1a52-4e2e-93a1-1a5d4a8e0c14"` // Payments for this debt
}

// Debt is the API representation of a Debt.
type Debt struct {
	models.DefaultModel
	DebtEditable
	Remaining decimal.Decimal `json:"remaining" example:"8500"` // Total minus all linked debt payments, never below zero
	Links     DebtLinks       `json:"links"`
}

// newDebt returns the API representation of a debt. It reads the payments
// linked to the debt to calculate the remaining amount.
func newDebt(c *gin.Context, model models.Debt) (Debt, error) {
	url := c.GetString(string(models.DBContextURL))

	var payments []models.Transaction
	err := models.DB.Where(&models.Transaction{DebtID: &model.ID}).Find(&payments).Error
	if err != nil {
		return Debt{}, err
	}

	entries := make([]ledger.Entry, 0, len(payments))
	for _, p := range payments {
		entries = append(entries, p.Entry())
	}

	return Debt{
		DefaultModel: model.DefaultModel,
		DebtEditable: DebtEditable{
			ProfileID: model.ProfileID,
			Type:      model.Type,
			Name:      model.Name,
			Total:     model.Total,
			Monthly:   model.Monthly,
		},
		Remaining: ledger.Remaining(entries, []ledger.Debt{model.Ledger()})[model.ID],
		Links: DebtLinks{
			Self:     fmt.Sprintf("%s/v1/debts/%s", url, model.ID),
			Profile:  fmt.Sprintf("%s/v1/profiles/%s", url, model.ProfileID),
			Payments: fmt.Sprintf("%s/v1/transactions?debt=%s", url, model.ID),
		},
	}, nil
}

type DebtListResponse struct {
	Data       []Debt      `json:"data"`                                                          // List of debts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DebtCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []DebtResponse `json:"data"`                                                          // List of created Debts
}

func (d *DebtCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	d.Data = append(d.Data, DebtResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type DebtResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this debt
	Data  *Debt   `json:"data"`                                                          // The debt data, if creation was successful
}

type DebtQueryFilter struct {
	ProfileID mh_uuid.UUID `form:"profile"`                    // ID of the profile
	Type      string       `form:"type"`                       // Exact type
	Name      string       `form:"name" filterField:"false"`   // Name contains this string
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first Debt returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of Debts to return. Defaults to 50.
}

func (f DebtQueryFilter) model() models.Debt {
	return models.Debt{
		ProfileID: f.ProfileID.UUID,
		Type:      f.Type,
	}
}
