package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payback-app/backend/internal/exchange"
	"github.com/payback-app/backend/internal/httputil"
)

// Controller holds the dependencies of the v1 API handlers. The engine
// is injected at router construction instead of living in a package
// global so that tests can wire their own submitter.
type Controller struct {
	Engine exchange.Engine
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is
// passed.
func RegisterRoutes(r *gin.RouterGroup, engine exchange.Engine) {
	co := Controller{Engine: engine}

	{
		r.OPTIONS("", OptionsRoot)
		r.GET("", GetRoot)
	}

	{
		r.OPTIONS("/import", OptionsImport)
		r.POST("/import", co.PostImport)
	}

	{
		r.OPTIONS("/export", OptionsExport)
		r.GET("/export", co.GetExport)
	}

	{
		r.OPTIONS("/friends", OptionsFriends)
		r.GET("/friends", co.GetFriends)
	}

	{
		r.OPTIONS("/groups", OptionsGroups)
		r.GET("/groups", co.GetGroups)
	}

	{
		r.OPTIONS("/expenses", OptionsExpenses)
		r.GET("/expenses", co.GetExpenses)
	}
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Import   string `json:"import" example:"https://example.com/v1/import"`     // URL of the import endpoint
	Export   string `json:"export" example:"https://example.com/v1/export"`     // URL of the export endpoint
	Friends  string `json:"friends" example:"https://example.com/v1/friends"`   // URL of the friends listing
	Groups   string `json:"groups" example:"https://example.com/v1/groups"`     // URL of the groups listing
	Expenses string `json:"expenses" example:"https://example.com/v1/expenses"` // URL of the expenses listing
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		v1 API overview
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	RootResponse
// @Router			/v1 [get]
func GetRoot(c *gin.Context) {
	base := httputil.RequestHost(c) + "/v1"

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Import:   base + "/import",
			Export:   base + "/export",
			Friends:  base + "/friends",
			Groups:   base + "/groups",
			Expenses: base + "/expenses",
		},
	})
}
