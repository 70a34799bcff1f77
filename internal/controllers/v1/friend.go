package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payback-app/backend/internal/httputil"
	"github.com/payback-app/backend/internal/models"
)

type FriendListResponse struct {
	Data []models.Friend `json:"data"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Friends
// @Success		204
// @Router			/v1/friends [options]
func OptionsFriends(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		List friends
// @Description	Returns the local friend roster, including peers known only from imports
// @Tags			Friends
// @Produce		json
// @Success		200	{object}	FriendListResponse
// @Failure		500	{object}	httputil.HTTPError
// @Router			/v1/friends [get]
func (co Controller) GetFriends(c *gin.Context) {
	friends, err := co.Engine.Friends()
	if err != nil {
		httputil.NewError(c, httputil.Status(err), err)
		return
	}

	// Do not send null if there are no friends
	if friends == nil {
		friends = make([]models.Friend, 0)
	}

	c.JSON(http.StatusOK, FriendListResponse{Data: friends})
}
