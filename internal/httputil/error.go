package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/payback-app/backend/internal/models"
)

var (
	ErrInvalidBody = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrInvalidUUID = errors.New("the specified resource ID is not a valid UUID")
)

// Status maps an error to the HTTP status it should be reported with.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNoSettings):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrInvalidBody), errors.Is(err, ErrInvalidUUID):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}

// NewError writes an error response and logs server errors with the
// request ID so that users can reference them.
func NewError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	}

	c.JSON(status, HTTPError{
		Error: err.Error(),
	})
}

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}
