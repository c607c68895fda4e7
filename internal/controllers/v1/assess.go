package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moneyhealth/backend/internal/advisor"
	"github.com/moneyhealth/backend/internal/health"
	"github.com/moneyhealth/backend/internal/httputil"
	"github.com/moneyhealth/backend/internal/ledger"
	"github.com/moneyhealth/backend/internal/types"
	"github.com/shopspring/decimal"
)

// AssessRequest describes a transaction that is about to be added.
type AssessRequest struct {
	Type     ledger.Type     `json:"type" example:"expense"`  // Type of the transaction
	Amount   decimal.Decimal `json:"amount" example:"120"`    // Amount of the transaction
	Category string          `json:"category" example:"Food"` // Category of the transaction
	Month    types.Month     `json:"month" example:"2024-06"` // The month the transaction is added to. Defaults to the current month.
}

type AssessResponse struct {
	Data  *advisor.AssessmentResult `json:"data"`                                                    // The assessment
	Error *string                   `json:"error" example:"there is no profile matching your query"` // The error, if any occurred
}

// RegisterAssessRoutes registers the route for transaction risk assessments
// with the RouterGroup that is passed.
func RegisterAssessRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsAssess)
	r.POST("", Assess)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Assessments
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/profiles/{id}/assess [options]
func OptionsAssess(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Assess transaction
// @Description	Assesses the risk of a transaction before it is added, based on the running totals of its month. The risk level is always calculated locally. The text is narrated by the narrative service if one is configured.
// @Tags			Assessments
// @Accept			json
// @Produce		json
// @Success		200			{object}	AssessResponse
// @Failure		400			{object}	AssessResponse
// @Failure		404			{object}	AssessResponse
// @Failure		500			{object}	AssessResponse
// @Param			id			path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		AssessRequest	true	"Transaction"
// @Router			/v1/profiles/{id}/assess [post]
func Assess(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AssessResponse{Error: &e})
		return
	}

	var request AssessRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AssessResponse{Error: &e})
		return
	}

	t, err := ledger.ParseType(string(request.Type))
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, AssessResponse{Error: &e})
		return
	}

	if request.Amount.IsNegative() {
		e := errAmountNegative.Error()
		c.JSON(http.StatusBadRequest, AssessResponse{Error: &e})
		return
	}

	month := request.Month
	if month.IsZero() {
		month = types.MonthOf(time.Now().UTC())
	}

	data, err := loadMonth(uri.ID.UUID, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AssessResponse{Error: &e})
		return
	}

	amount := request.Amount.InexactFloat64()
	local := health.AssessTransaction(data.month, t, amount, request.Category)
	result := narrator.Assess(c.Request.Context(), data.advisorInput(), advisor.TransactionInput{
		Type:     string(t),
		Amount:   amount,
		Category: request.Category,
	}, local)

	c.JSON(http.StatusOK, AssessResponse{Data: &result})
}
