package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneyhealth/backend/internal/advisor"
	"github.com/moneyhealth/backend/internal/health"
	"github.com/moneyhealth/backend/internal/httputil"
	"github.com/moneyhealth/backend/internal/ledger"
	"github.com/moneyhealth/backend/internal/models"
	"github.com/moneyhealth/backend/internal/types"
)

// narrator narrates reports and assessments. Without a narrative service,
// all narratives are local.
var narrator = advisor.New(nil)

// SetAdvisor sets the advisor used for reports and assessments.
func SetAdvisor(a *advisor.Advisor) {
	if a == nil {
		a = advisor.New(nil)
	}
	narrator = a
}

// RegisterMonthRoutes registers the routes for the months of a profile with
// the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:month", OptionsMonth)
	r.GET("/:month", GetMonth)

	r.OPTIONS("/:month/health", OptionsMonth)
	r.GET("/:month/health", GetMonthHealth)

	r.OPTIONS("/:month/breakdown", OptionsMonth)
	r.GET("/:month/breakdown", GetMonthBreakdown)

	r.OPTIONS("/:month/trend", OptionsMonth)
	r.GET("/:month/trend", GetMonthTrend)

	r.OPTIONS("/:month/tips", OptionsMonth)
	r.GET("/:month/tips", GetMonthTips)

	r.OPTIONS("/:month/report", OptionsMonth)
	r.GET("/:month/report", GetMonthReport)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Param			id		path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/profiles/{id}/months/{month} [options]
func OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// loadMonthData reads the ledger of the profile from the URI and aggregates
// the requested month.
func loadMonthData(c *gin.Context) (monthData, error) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return monthData{}, err
	}

	return loadMonth(uri.ID.UUID, types.MonthOf(uri.Month))
}

func loadMonth(profileID uuid.UUID, month types.Month) (monthData, error) {
	l, err := models.LoadLedger(models.DB, profileID)
	if err != nil {
		return monthData{}, err
	}

	months := ledger.GroupByMonth(l.Entries)
	current, ok := months[month]
	if !ok {
		current = ledger.NewMonth(month, nil)
	}

	return monthData{
		profile:  l.Profile,
		months:   months,
		month:    current,
		prev:     health.Previous(months, month),
		snapshot: ledger.Replay(l.Entries, l.Debts, month.End()),
		debts:    ledger.Outstanding(l.Entries, l.Debts, month.End()),
	}, nil
}

// @Summary		Get month
// @Description	Returns the aggregated data of a month: totals, breakdowns, the balances and the debts at the end of the month
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthResponse
// @Failure		400		{object}	MonthResponse
// @Failure		404		{object}	MonthResponse
// @Failure		500		{object}	MonthResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/profiles/{id}/months/{month} [get]
func GetMonth(c *gin.Context) {
	data, err := loadMonthData(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{Error: &e})
		return
	}

	month := newMonth(c, data)
	c.JSON(http.StatusOK, MonthResponse{Data: &month})
}

// @Summary		Get money health
// @Description	Returns the money health score of a month, between 0 and 100
// @Tags			Months
// @Produce		json
// @Success		200		{object}	HealthResponse
// @Failure		400		{object}	HealthResponse
// @Failure		404		{object}	HealthResponse
// @Failure		500		{object}	HealthResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/profiles/{id}/months/{month}/health [get]
func GetMonthHealth(c *gin.Context) {
	data, err := loadMonthData(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), HealthResponse{Error: &e})
		return
	}

	score := data.score()
	c.JSON(http.StatusOK, HealthResponse{Data: &score})
}

// @Summary		Get month breakdown
// @Description	Returns the five-metric score of a month. Each metric is worth up to 25 points.
// @Tags			Months
// @Produce		json
// @Success		200		{object}	BreakdownResponse
// @Failure		400		{object}	BreakdownResponse
// @Failure		404		{object}	BreakdownResponse
// @Failure		500		{object}	BreakdownResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/profiles/{id}/months/{month}/breakdown [get]
func GetMonthBreakdown(c *gin.Context) {
	data, err := loadMonthData(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BreakdownResponse{Error: &e})
		return
	}

	breakdown := data.breakdown()
	c.JSON(http.StatusOK, BreakdownResponse{Data: &breakdown})
}

// @Summary		Get trend
// @Description	Compares the average month score of the three months up to this month with the three months before. Data is null when none of these months has data.
// @Tags			Months
// @Produce		json
// @Success		200		{object}	TrendResponse
// @Failure		400		{object}	TrendResponse
// @Failure		404		{object}	TrendResponse
// @Failure		500		{object}	TrendResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/profiles/{id}/months/{month}/trend [get]
func GetMonthTrend(c *gin.Context) {
	data, err := loadMonthData(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TrendResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TrendResponse{Data: data.trend()})
}

// @Summary		Get tips
// @Description	Returns tips for a month, ordered by metric
// @Tags			Months
// @Produce		json
// @Success		200		{object}	TipsResponse
// @Failure		400		{object}	TipsResponse
// @Failure		404		{object}	TipsResponse
// @Failure		500		{object}	TipsResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/profiles/{id}/months/{month}/tips [get]
func GetMonthTips(c *gin.Context) {
	data, err := loadMonthData(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TipsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TipsResponse{Data: data.tips()})
}

// @Summary		Get report
// @Description	Returns the narrated health report and recommendations for a month. If the narrative service is not configured or fails, the local narrative is returned. The source field tells which one was used.
// @Tags			Months
// @Produce		json
// @Success		200		{object}	ReportResponse
// @Failure		400		{object}	ReportResponse
// @Failure		404		{object}	ReportResponse
// @Failure		500		{object}	ReportResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/profiles/{id}/months/{month}/report [get]
func GetMonthReport(c *gin.Context) {
	data, err := loadMonthData(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportResponse{Error: &e})
		return
	}

	report := narrator.Report(c.Request.Context(), data.advisorInput())
	c.JSON(http.StatusOK, ReportResponse{Data: &report})
}
