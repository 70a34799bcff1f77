package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payback-app/backend/internal/exchange"
	"github.com/payback-app/backend/internal/httputil"
)

type GroupListResponse struct {
	Data []exchange.LocalGroup `json:"data"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Router			/v1/groups [options]
func OptionsGroups(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		List groups
// @Description	Returns all groups together with their members
// @Tags			Groups
// @Produce		json
// @Success		200	{object}	GroupListResponse
// @Failure		500	{object}	httputil.HTTPError
// @Router			/v1/groups [get]
func (co Controller) GetGroups(c *gin.Context) {
	groups, err := co.Engine.Groups()
	if err != nil {
		httputil.NewError(c, httputil.Status(err), err)
		return
	}

	// Do not send null if there are no groups
	if groups == nil {
		groups = make([]exchange.LocalGroup, 0)
	}

	c.JSON(http.StatusOK, GroupListResponse{Data: groups})
}
