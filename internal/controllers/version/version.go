// Package version reports the build of the running service.
package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneyhealth/backend/internal/httputil"
)

// Service names the backend in version responses.
const Service = "money-health"

type Response struct {
	Data Object `json:"data"`
}

type Object struct {
	Service string `json:"service" example:"money-health"`
	Version string `json:"version" example:"0.4.2"` // Set with -ldflags on router.Version
}

// RegisterRoutes serves v as the running version.
func RegisterRoutes(r *gin.RouterGroup, v string) {
	r.OPTIONS("", Options)
	r.GET("", Get(v))
}

// @Summary		Allowed HTTP verbs
// @Description	Responds with the "allow" header for the version endpoint
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns the handler for the version endpoint.
//
// @Summary		Service version
// @Description	Returns the name and build version of the service
// @Tags			General
// @Success		200	{object}	Response
// @Router			/version [get]
func Get(v string) gin.HandlerFunc {
	body := Response{Data: Object{Service: Service, Version: v}}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, body)
	}
}
