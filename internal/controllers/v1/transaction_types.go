package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneyhealth/backend/internal/ledger"
	"github.com/moneyhealth/backend/internal/models"
	"github.com/moneyhealth/backend/internal/types"
	mh_uuid "github.com/moneyhealth/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	ProfileID   uuid.UUID       `json:"profileId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the profile
	Type        ledger.Type     `json:"type" example:"expense"`                                   // One of income, salary, business, freelance, investments, side_hustle, expense, savings, investing, debt_payment, emergency_fund, cash_adjustment
	Date        time.Time       `json:"date" example:"2024-06-15T00:00:00Z"`                      // Date of the transaction
	Category    string          `json:"category" example:"Food"`                                  // Category. If empty, the first matching match rule sets it.
	SubCategory string          `json:"subCategory" example:"Groceries"`                          // Sub category
	Description string          `json:"description" example:"Farmers market"`                     // A description of the transaction
	Amount      decimal.Decimal `json:"amount" example:"14.03" minimum:"0"`                       // The amount of the transaction
	DebtID      *uuid.UUID      `json:"debtId" example:"2e9b2f3c-1a52-4e2e-93a1-1a5d4a8e0c14"`    // The debt this payment is for. Only valid for debt_payment transactions.
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		ProfileID:   editable.ProfileID,
		Type:        editable.Type,
		Date:        editable.Date,
		Category:    editable.Category,
		SubCategory: editable.SubCategory,
		Description: editable.Description,
		Amount:      editable.Amount,
		DebtID:      editable.DebtID,
	}
}

type TransactionLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
	Profile string `json:"profile" example:"https://example.com/api/v1/profiles/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`  // The profile of the transaction
}

// Transaction is the API representation of a Transaction.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Month string           `json:"month" example:"2024-06"` // Year and month the transaction is aggregated in
	Links TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			ProfileID:   model.ProfileID,
			Type:        model.Type,
			Date:        model.Date,
			Category:    model.Category,
			SubCategory: model.SubCategory,
			Description: model.Description,
			Amount:      model.Amount,
			DebtID:      model.DebtID,
		},
		Month: types.MonthOf(model.Date).String(),
		Links: TransactionLinks{
			Self:    fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
			Profile: fmt.Sprintf("%s/v1/profiles/%s", url, model.ProfileID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The transaction data, if creation was successful
}

type TransactionQueryFilter struct {
	ProfileID         mh_uuid.UUID    `form:"profile"`                                                      // ID of the profile
	Type              string          `form:"type" filterField:"false"`                                     // Type of the transaction
	Month             time.Time       `form:"month" time_format:"2006-01" time_utc:"1" filterField:"false"` // Year and month in YYYY-MM format
	FromDate          time.Time       `form:"fromDate" filterField:"false"`                                 // From this date. Time is ignored.
	UntilDate         time.Time       `form:"untilDate" filterField:"false"`                                // Until this date. Time is ignored.
	Category          string          `form:"category"`                                                     // Exact category
	SubCategory       string          `form:"subCategory"`                                                  // Exact sub category
	Description       string          `form:"description" filterField:"false"`                              // Description contains this string
	DebtID            mh_uuid.UUID    `form:"debt"`                                                         // ID of the debt
	AmountLessOrEqual decimal.Decimal `form:"amountLessOrEqual" filterField:"false"`                        // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal `form:"amountMoreOrEqual" filterField:"false"`                        // Amount more than or equal to this
	Offset            uint            `form:"offset" filterField:"false"`                                   // The offset of the first Transaction returned. Defaults to 0.
	Limit             int             `form:"limit" filterField:"false"`                                    // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	// This does not set the type, string or date fields since they are
	// handled in the controller function
	return models.Transaction{
		ProfileID:   f.ProfileID.UUID,
		Category:    f.Category,
		SubCategory: f.SubCategory,
		DebtID:      f.DebtID.Ptr(),
	}
}
