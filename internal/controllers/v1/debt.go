package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneyhealth/backend/internal/events"
	"github.com/moneyhealth/backend/internal/httputil"
	"github.com/moneyhealth/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterDebtRoutes registers the routes for debts with
// the RouterGroup that is passed.
func RegisterDebtRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsDebtList)
		r.GET("", GetDebts)
		r.POST("", CreateDebts)
	}

	// Debt with ID
	{
		r.OPTIONS("/:id", OptionsDebtDetail)
		r.GET("/:id", GetDebt)
		r.PATCH("/:id", UpdateDebt)
		r.DELETE("/:id", DeleteDebt)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Debts
// @Success		204
// @Router			/v1/debts [options]
func OptionsDebtList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Debts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id} [options]
func OptionsDebtDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Debt{})
}

// @Summary		Create debts
// @Description	Creates debts from the list of submitted debt data. The response code is the highest response code number that a single debt creation would have caused. If it is not equal to 201, at least one debt has an error.
// @Tags			Debts
// @Produce		json
// @Success		201		{object}	DebtCreateResponse
// @Failure		400		{object}	DebtCreateResponse
// @Failure		404		{object}	DebtCreateResponse
// @Failure		500		{object}	DebtCreateResponse
// @Param			debts	body		[]DebtEditable	true	"Debts"
// @Router			/v1/debts [post]
func CreateDebts(c *gin.Context) {
	var editables []DebtEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := DebtCreateResponse{}
	created := make(map[uuid.UUID][]uuid.UUID)

	for _, editable := range editables {
		debt := editable.model()

		err = models.DB.Create(&debt).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		created[debt.ProfileID] = append(created[debt.ProfileID], debt.ID)

		data, err := newDebt(c, debt)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, DebtResponse{Data: &data})
	}

	for profileID, ids := range created {
		events.Publish(c.Request.Context(), events.Added(profileID, events.KindDebt, ids...))
	}

	c.JSON(status, r)
}

// @Summary		Get debts
// @Description	Returns a list of debts
// @Tags			Debts
// @Produce		json
// @Success		200	{object}	DebtListResponse
// @Failure		400	{object}	DebtListResponse
// @Failure		500	{object}	DebtListResponse
// @Param			profile	query	string	false	"Filter by profile ID"
// @Param			type	query	string	false	"Filter by type"
// @Param			name	query	string	false	"Filter by name"
// @Param			offset	query	uint	false	"The offset of the first Debt returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Debts to return. Defaults to 50."
// @Router			/v1/debts [get]
func GetDebts(c *gin.Context) {
	var filter DebtQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DebtListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC, created_at ASC").
		Where(filter.model(), queryFields...)

	q = likeFilter(q, setFields, "Name", "name", filter.Name)
	q, limit := paginate(q, setFields, filter.Offset, filter.Limit)

	var debts []models.Debt
	err := q.Find(&debts).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtListResponse{Error: &e})
		return
	}

	data := make([]Debt, 0, len(debts))
	for _, debt := range debts {
		apiResource, err := newDebt(c, debt)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), DebtListResponse{Error: &e})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, DebtListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get debt
// @Description	Returns a specific debt
// @Tags			Debts
// @Produce		json
// @Success		200	{object}	DebtResponse
// @Failure		400	{object}	DebtResponse
// @Failure		404	{object}	DebtResponse
// @Failure		500	{object}	DebtResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id} [get]
func GetDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	var debt models.Debt
	err = models.DB.First(&debt, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	data, err := newDebt(c, debt)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, DebtResponse{
		Data: &data,
	})
}

// @Summary		Update debt
// @Description	Update a debt. Only values to be updated need to be specified. The monthly payment is replaced, never summed.
// @Tags			Debts
// @Accept			json
// @Produce		json
// @Success		200		{object}	DebtResponse
// @Failure		400		{object}	DebtResponse
// @Failure		404		{object}	DebtResponse
// @Failure		500		{object}	DebtResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			debt	body		DebtEditable	true	"Debt"
// @Router			/v1/debts/{id} [patch]
func UpdateDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	var debt models.Debt
	err = models.DB.First(&debt, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, DebtEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	var data DebtEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	// Payments must stay within the profile of their debt
	if slices.Contains(updateFields, "ProfileID") && data.ProfileID != debt.ProfileID {
		var payments int64
		err = models.DB.Model(&models.Transaction{}).Where(&models.Transaction{DebtID: &debt.ID}).Count(&payments).Error
		if err == nil && payments > 0 {
			err = errDebtProfile
		}
		if err != nil {
			e := err.Error()
			c.JSON(status(err), DebtResponse{
				Error: &e,
			})
			return
		}
	}

	previousProfileID := debt.ProfileID
	err = models.DB.Model(&debt).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	if previousProfileID != debt.ProfileID {
		events.Publish(c.Request.Context(), events.Removed(previousProfileID, events.KindDebt, debt.ID))
		events.Publish(c.Request.Context(), events.Added(debt.ProfileID, events.KindDebt, debt.ID))
	} else {
		events.Publish(c.Request.Context(), events.Updated(debt.ProfileID, events.KindDebt, debt.ID))
	}

	apiResource, err := newDebt(c, debt)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, DebtResponse{
		Data: &apiResource,
	})
}

// @Summary		Delete debt
// @Description	Deletes a debt. Payments for it are kept and lose their link to the debt.
// @Tags			Debts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id} [delete]
func DeleteDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var debt models.Debt
	err = models.DB.First(&debt, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Payments are unlinked by the database, collect them for the change events
	var paymentIDs []uuid.UUID
	err = models.DB.Model(&models.Transaction{}).Where(&models.Transaction{DebtID: &debt.ID}).Pluck("id", &paymentIDs).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&debt).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	events.Publish(c.Request.Context(), events.Removed(debt.ProfileID, events.KindDebt, debt.ID))
	events.Publish(c.Request.Context(), events.Updated(debt.ProfileID, events.KindTransaction, paymentIDs...))

	c.JSON(http.StatusNoContent, nil)
}
