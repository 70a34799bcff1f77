package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payback-app/backend/internal/exchange"
	"github.com/payback-app/backend/internal/httputil"
)

type ExpenseListResponse struct {
	Data []exchange.LocalExpense `json:"data"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenses(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		List expenses
// @Description	Returns all expenses together with their splits, subexpenses and participant names
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseListResponse
// @Failure		500	{object}	httputil.HTTPError
// @Router			/v1/expenses [get]
func (co Controller) GetExpenses(c *gin.Context) {
	expenses, err := co.Engine.Expenses()
	if err != nil {
		httputil.NewError(c, httputil.Status(err), err)
		return
	}

	// Do not send null if there are no expenses
	if expenses == nil {
		expenses = make([]exchange.LocalExpense, 0)
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: expenses})
}
