package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneyhealth/backend/internal/events"
	"github.com/moneyhealth/backend/internal/httputil"
	"github.com/moneyhealth/backend/internal/ledger"
	"github.com/moneyhealth/backend/internal/models"
	"github.com/moneyhealth/backend/internal/types"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Transaction{})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	apiResource := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &apiResource})
}

// @Summary		Get transactions
// @Description	Returns a list of transactions
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			profile				query	string	false	"Filter by profile ID"
// @Param			type				query	string	false	"Filter by type"
// @Param			month				query	string	false	"Transactions in this month, formatted as YYYY-MM"
// @Param			fromDate			query	string	false	"Transactions at and after this date"
// @Param			untilDate			query	string	false	"Transactions before and at this date"
// @Param			category			query	string	false	"Filter by category"
// @Param			subCategory			query	string	false	"Filter by sub category"
// @Param			description			query	string	false	"Filter by description"
// @Param			debt				query	string	false	"Filter by debt ID"
// @Param			amountLessOrEqual	query	string	false	"Amount less than or equal to this"
// @Param			amountMoreOrEqual	query	string	false	"Amount more than or equal to this"
// @Param			offset				query	uint	false	"The offset of the first Transaction returned. Defaults to 0."
// @Param			limit				query	int		false	"Maximum number of Transactions to return. Defaults to 50."
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC").
		Where(filter.model(), queryFields...)

	if filter.Type != "" {
		t, err := ledger.ParseType(filter.Type)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, TransactionListResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("transactions.type = ?", t)
	}

	if !filter.Month.IsZero() {
		month := types.MonthOf(filter.Month)
		q = q.Where("transactions.date >= date(?)", time.Time(month)).Where("transactions.date < date(?)", month.End())
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("transactions.date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("transactions.date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	if !filter.AmountLessOrEqual.IsZero() {
		q = q.Where("transactions.amount <= ?", filter.AmountLessOrEqual)
	}

	if !filter.AmountMoreOrEqual.IsZero() {
		q = q.Where("transactions.amount >= ?", filter.AmountMoreOrEqual)
	}

	q = likeFilter(q, setFields, "Description", "transactions.description", filter.Description)
	q, limit := paginate(q, setFields, filter.Offset, filter.Limit)

	var transactions []models.Transaction
	err := q.Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create transactions
// @Description	Creates transactions from the list of submitted transaction data. Transactions without a category are categorized by the first matching match rule of their profile. The response code is the highest response code number that a single transaction creation would have caused. If it is not equal to 201, at least one transaction has an error.
// @Tags			Transactions
// @Produce		json
// @Success		201				{object}	TransactionCreateResponse
// @Failure		400				{object}	TransactionCreateResponse
// @Failure		404				{object}	TransactionCreateResponse
// @Failure		500				{object}	TransactionCreateResponse
// @Param			transactions	body		[]TransactionEditable	true	"Transactions"
// @Router			/v1/transactions [post]
func CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TransactionCreateResponse{}

	rules := make(map[uuid.UUID][]models.MatchRule)
	created := make(map[uuid.UUID][]uuid.UUID)

	for _, editable := range editables {
		transaction := editable.model()

		err = checkDebt(transaction.ProfileID, transaction.DebtID)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		if _, ok := rules[transaction.ProfileID]; !ok {
			rules[transaction.ProfileID], err = models.MatchRulesFor(models.DB, transaction.ProfileID)
			if err != nil {
				status = r.appendError(err, status)
				continue
			}
		}
		models.Categorize(rules[transaction.ProfileID], &transaction)

		err = models.DB.Create(&transaction).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		created[transaction.ProfileID] = append(created[transaction.ProfileID], transaction.ID)

		data := newTransaction(c, transaction)
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	for profileID, ids := range created {
		events.Publish(c.Request.Context(), events.Added(profileID, events.KindTransaction, ids...))
	}

	c.JSON(status, r)
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	var data TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	// The resulting profile and debt after the update
	profileID := transaction.ProfileID
	if slices.Contains(updateFields, "ProfileID") {
		profileID = data.ProfileID
	}

	debtID := transaction.DebtID
	if slices.Contains(updateFields, "DebtID") {
		debtID = data.DebtID
	}

	err = checkDebt(profileID, debtID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	update := data.model()
	updateFields, err = categorizeUpdate(transaction, profileID, &update, updateFields)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	previousProfileID := transaction.ProfileID
	err = models.DB.Model(&transaction).Select("", updateFields...).Updates(update).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	if previousProfileID != profileID {
		events.Publish(c.Request.Context(), events.Removed(previousProfileID, events.KindTransaction, transaction.ID))
		events.Publish(c.Request.Context(), events.Added(profileID, events.KindTransaction, transaction.ID))
	} else {
		events.Publish(c.Request.Context(), events.Updated(profileID, events.KindTransaction, transaction.ID))
	}

	apiResource := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &apiResource})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	events.Publish(c.Request.Context(), events.Removed(transaction.ProfileID, events.KindTransaction, transaction.ID))

	c.JSON(http.StatusNoContent, nil)
}

// checkDebt verifies that the referenced debt exists and belongs to the profile.
func checkDebt(profileID uuid.UUID, debtID *uuid.UUID) error {
	if debtID == nil || *debtID == uuid.Nil {
		return nil
	}

	var debt models.Debt
	err := models.DB.First(&debt, *debtID).Error
	if err != nil {
		return err
	}

	if debt.ProfileID != profileID {
		return errDebtProfile
	}

	return nil
}

// categorizeUpdate applies the match rules of the profile when an update
// leaves a transaction without a category. It returns the update fields,
// extended by the category fields if a rule matched.
func categorizeUpdate(current models.Transaction, profileID uuid.UUID, update *models.Transaction, updateFields []any) ([]any, error) {
	result := current
	result.ProfileID = profileID

	for _, field := range updateFields {
		switch field {
		case "Category":
			result.Category = update.Category
		case "SubCategory":
			result.SubCategory = update.SubCategory
		case "Description":
			result.Description = update.Description
		}
	}

	// Only updates touching the categorization are re-evaluated
	if !slices.Contains(updateFields, any("Category")) && !slices.Contains(updateFields, any("Description")) {
		return updateFields, nil
	}

	rules, err := models.MatchRulesFor(models.DB, profileID)
	if err != nil {
		return updateFields, err
	}

	if !models.Categorize(rules, &result) {
		return updateFields, nil
	}

	update.Category = result.Category
	update.SubCategory = result.SubCategory

	for _, field := range []string{"Category", "SubCategory"} {
		if !slices.Contains(updateFields, any(field)) {
			updateFields = append(updateFields, field)
		}
	}

	return updateFields, nil
}
