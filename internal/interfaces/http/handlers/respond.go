// Package handlers implements the gin handlers of the REST surface.
package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
)

// errorBody is the uniform error envelope of the API.
type errorBody struct {
	Error   constants.ErrorCode `json:"error"`
	Message string              `json:"message"`
}

// respondError maps an application error onto its HTTP status.
func respondError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), errorBody{Error: appErr.Code, Message: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, errorBody{
		Error:   constants.ErrCodeInternal,
		Message: "internal error",
	})
}

// bindQuery binds query parameters and reports malformed values uniformly.
func bindQuery(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindQuery(out); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{
			Error:   constants.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return false
	}
	return true
}

// bindJSON binds and reports malformed bodies uniformly.
func bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{
			Error:   constants.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return false
	}
	return true
}
