package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/payback-app/backend/internal/exchange"
	"github.com/payback-app/backend/internal/httputil"
)

var (
	errNoFilePost         = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix    = errors.New("this endpoint only supports files of the following type")
	errInvalidResolutions = errors.New("the resolutions form field could not be parsed")
)

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// parseResolutions reads the optional "resolutions" form field. The
// field maps imported member IDs to conflict decisions; it is absent on
// the first attempt and filled in once the user decided.
func parseResolutions(c *gin.Context) (exchange.Resolutions, error) {
	raw := c.PostForm("resolutions")
	if raw == "" {
		return nil, nil
	}

	var decoded map[string]exchange.Resolution
	err := json.Unmarshal([]byte(raw), &decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errInvalidResolutions, err)
	}

	resolutions := make(exchange.Resolutions, len(decoded))
	for key, resolution := range decoded {
		id, err := uuid.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid member ID", errInvalidResolutions, key)
		}
		resolutions[id] = resolution
	}

	return resolutions, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Import a Payback export
// @Description	Parses an export file, reconciles it against the local data and mirrors the result to the remote store. When name conflicts are found and no resolutions are supplied, the conflicts are returned and nothing is imported.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201			{object}	exchange.Result
// @Failure		400			{object}	exchange.Result
// @Failure		409			{object}	exchange.Result
// @Failure		500			{object}	httputil.HTTPError
// @Param			file		formData	file	true	"File to import"
// @Param			resolutions	formData	string	false	"JSON object mapping imported member IDs to conflict resolutions"
// @Router			/v1/import [post]
func (co Controller) PostImport(c *gin.Context) {
	f, err := getUploadedFile(c, ".txt")
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	text, err := io.ReadAll(f)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	resolutions, err := parseResolutions(c)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	result, err := co.Engine.Import(c.Request.Context(), string(text), resolutions)
	if err != nil {
		httputil.NewError(c, httputil.Status(err), err)
		return
	}

	switch result.Kind {
	case exchange.ResultIncompatibleFormat:
		c.JSON(http.StatusBadRequest, result)
	case exchange.ResultNeedsResolution:
		c.JSON(http.StatusConflict, result)
	default:
		c.JSON(http.StatusCreated, result)
	}
}
