package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneyhealth/backend/internal/events"
	"github.com/moneyhealth/backend/internal/httputil"
	"github.com/moneyhealth/backend/internal/models"
)

// RegisterProfileRoutes registers the routes for profiles with
// the RouterGroup that is passed.
func RegisterProfileRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsProfileList)
		r.GET("", GetProfiles)
		r.POST("", CreateProfiles)
	}

	// Profile with ID
	{
		r.OPTIONS("/:id", OptionsProfileDetail)
		r.GET("/:id", GetProfile)
		r.PATCH("/:id", UpdateProfile)
		r.DELETE("/:id", DeleteProfile)
	}

	RegisterMonthRoutes(r.Group("/:id/months"))
	RegisterAssessRoutes(r.Group("/:id/assess"))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Profiles
// @Success		204
// @Router			/v1/profiles [options]
func OptionsProfileList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Profiles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/profiles/{id} [options]
func OptionsProfileDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Profile{})
}

// @Summary		Create profiles
// @Description	Creates profiles from the list of submitted profile data. The response code is the highest response code number that a single profile creation would have caused. If it is not equal to 201, at least one profile has an error.
// @Tags			Profiles
// @Produce		json
// @Success		201			{object}	ProfileCreateResponse
// @Failure		400			{object}	ProfileCreateResponse
// @Failure		500			{object}	ProfileCreateResponse
// @Param			profiles	body		[]ProfileEditable	true	"Profiles"
// @Router			/v1/profiles [post]
func CreateProfiles(c *gin.Context) {
	var editables []ProfileEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ProfileCreateResponse{}

	for _, editable := range editables {
		profile := editable.model()

		err = models.DB.Create(&profile).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newProfile(c, profile)
		r.Data = append(r.Data, ProfileResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List profiles
// @Description	Returns a list of profiles
// @Tags			Profiles
// @Produce		json
// @Success		200	{object}	ProfileListResponse
// @Failure		400	{object}	ProfileListResponse
// @Failure		500	{object}	ProfileListResponse
// @Router			/v1/profiles [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			currency	query	string	false	"Filter by currency"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Profile returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Profiles to return. Defaults to 50."
func GetProfiles(c *gin.Context) {
	var filter ProfileQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)
	q, limit := paginate(q, setFields, filter.Offset, filter.Limit)

	var profiles []models.Profile
	err := q.Find(&profiles).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Profile, 0, len(profiles))
	for _, profile := range profiles {
		data = append(data, newProfile(c, profile))
	}

	c.JSON(http.StatusOK, ProfileListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get profile
// @Description	Returns a specific profile
// @Tags			Profiles
// @Produce		json
// @Success		200	{object}	ProfileResponse
// @Failure		400	{object}	ProfileResponse
// @Failure		404	{object}	ProfileResponse
// @Failure		500	{object}	ProfileResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/profiles/{id} [get]
func GetProfile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	var profile models.Profile
	err = models.DB.First(&profile, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	data := newProfile(c, profile)
	c.JSON(http.StatusOK, ProfileResponse{
		Data: &data,
	})
}

// @Summary		Update profile
// @Description	Update an existing profile. Only values to be updated need to be specified.
// @Tags			Profiles
// @Accept			json
// @Produce		json
// @Success		200		{object}	ProfileResponse
// @Failure		400		{object}	ProfileResponse
// @Failure		404		{object}	ProfileResponse
// @Failure		500		{object}	ProfileResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			profile	body		ProfileEditable	true	"Profile"
// @Router			/v1/profiles/{id} [patch]
func UpdateProfile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	var profile models.Profile
	err = models.DB.First(&profile, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ProfileEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	var data ProfileEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&profile).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	apiResource := newProfile(c, profile)
	c.JSON(http.StatusOK, ProfileResponse{
		Data: &apiResource,
	})
}

// @Summary		Delete profile
// @Description	Deletes a profile together with all of its transactions, debts and match rules
// @Tags			Profiles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/profiles/{id} [delete]
func DeleteProfile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var profile models.Profile
	err = models.DB.First(&profile, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// The cascade removes these, collect them for the change events
	var transactionIDs, debtIDs []uuid.UUID
	err = models.DB.Model(&models.Transaction{}).Where(&models.Transaction{ProfileID: profile.ID}).Pluck("id", &transactionIDs).Error
	if err == nil {
		err = models.DB.Model(&models.Debt{}).Where(&models.Debt{ProfileID: profile.ID}).Pluck("id", &debtIDs).Error
	}
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&profile).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	events.Publish(c.Request.Context(), events.Removed(profile.ID, events.KindTransaction, transactionIDs...))
	events.Publish(c.Request.Context(), events.Removed(profile.ID, events.KindDebt, debtIDs...))

	c.JSON(http.StatusNoContent, nil)
}
