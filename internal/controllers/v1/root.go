package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneyhealth/backend/internal/httputil"
	"github.com/moneyhealth/backend/internal/models"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Profiles     string `json:"profiles" example:"https://example.com/api/v1/profiles"`         // URL of Profile collection endpoint
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"` // URL of Transaction collection endpoint
	Debts        string `json:"debts" example:"https://example.com/api/v1/debts"`               // URL of Debt collection endpoint
	MatchRules   string `json:"matchRules" example:"https://example.com/api/v1/match-rules"`    // URL of Match Rule collection endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Profiles:     url + "/v1/profiles",
			Transactions: url + "/v1/transactions",
			Debts:        url + "/v1/debts",
			MatchRules:   url + "/v1/match-rules",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
