// Package root serves the entrypoint of the API.
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneyhealth/backend/internal/httputil"
	"github.com/moneyhealth/backend/internal/models"
)

type Response struct {
	Links Links `json:"links"`
}

// Links points to everything reachable from the API root.
type Links struct {
	Docs    string `json:"docs" example:"https://money.example.com/api/docs/index.html"`
	Healthz string `json:"healthz" example:"https://money.example.com/api/healthz"`
	Version string `json:"version" example:"https://money.example.com/api/version"`
	Metrics string `json:"metrics" example:"https://money.example.com/api/metrics"`
	V1      string `json:"v1" example:"https://money.example.com/api/v1"` // Profiles, ledger resources and month scores
}

func newLinks(base string) Links {
	return Links{
		Docs:    base + "/docs/index.html",
		Healthz: base + "/healthz",
		Version: base + "/version",
		Metrics: base + "/metrics",
		V1:      base + "/v1",
	}
}

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// @Summary		API root
// @Description	Lists the documentation, operational endpoints and the v1 API
// @Tags			General
// @Success		200	{object}	Response
// @Router			/ [get]
func Get(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Links: newLinks(c.GetString(string(models.DBContextURL)))})
}

// @Summary		Allowed HTTP verbs
// @Description	Responds with the "allow" header for the API root
// @Tags			General
// @Success		204
// @Router			/ [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
