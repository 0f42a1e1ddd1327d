package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ierr "github.com/coverbridge/coverbridge/internal/errors"
)

// ErrorHandler converts errors attached via c.Error into the JSON error
// envelope. Services return marked errors only; the HTTP status lives
// entirely in this mapping.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		c.AbortWithStatusJSON(statusCode(err), ierr.NewErrorResponse(err))
	}
}

func statusCode(err error) int {
	switch {
	case ierr.IsValidation(err), ierr.IsInvalidOperation(err):
		return http.StatusBadRequest
	case ierr.IsNotFound(err):
		return http.StatusNotFound
	case ierr.IsPermissionDenied(err):
		return http.StatusForbidden
	case ierr.IsAlreadyExists(err), ierr.IsInvalidTransition(err):
		return http.StatusConflict
	case ierr.IsInactive(err), ierr.IsReasonRequired(err),
		ierr.IsInvariantViolation(err), ierr.IsFieldNotEditable(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
