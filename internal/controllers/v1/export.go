package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/payback-app/backend/internal/exchange"
	"github.com/payback-app/backend/internal/httputil"
)

// ExportQuery are the supported filters for an export.
type ExportQuery struct {
	ExcludeGroups []string `form:"excludeGroups"`
	IncludeDebug  bool     `form:"includeDebug"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v1/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Export the local data set
// @Description	Serializes the current user, friends, groups and expenses into the portable export format
// @Tags			Export
// @Produce		plain
// @Success		200	{string}	string
// @Failure		500	{object}	httputil.HTTPError
// @Param			excludeGroups	query	[]string	false	"Glob patterns of group names to leave out"	collectionFormat(multi)
// @Param			includeDebug	query	bool		false	"Include records flagged as debug data"
// @Router			/v1/export [get]
func (co Controller) GetExport(c *gin.Context) {
	var query ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	text, err := co.Engine.ExportAll(exchange.ExportOptions{
		ExcludeGroups: query.ExcludeGroups,
		IncludeDebug:  query.IncludeDebug,
	})
	if err != nil {
		httputil.NewError(c, httputil.Status(err), err)
		return
	}

	filename := fmt.Sprintf("payback-export-%s.txt", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
