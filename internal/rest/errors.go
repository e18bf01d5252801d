package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"slot-swapper-api/internal/apperr"
)

var httpStatus = map[apperr.Code]int{
	apperr.NotFound:         http.StatusNotFound,
	apperr.Forbidden:        http.StatusForbidden,
	apperr.InvalidState:     http.StatusConflict,
	apperr.InvalidOperation: http.StatusBadRequest,
	apperr.Inconsistent:     http.StatusInternalServerError,
	apperr.Transient:        http.StatusServiceUnavailable,
	apperr.InvalidArgument:  http.StatusBadRequest,
	apperr.Unauthenticated:  http.StatusUnauthorized,
	apperr.Conflict:         http.StatusConflict,
}

type errorBody struct {
	Error string      `json:"error"`
	Code  apperr.Code `json:"code"`
}

// fail writes err as {"error", "code"} and aborts the chain.
func fail(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{Error: "internal error", Code: apperr.Inconsistent})
		return
	}
	code, ok := httpStatus[e.Code]
	if !ok {
		code = http.StatusInternalServerError
	}
	if code == http.StatusServiceUnavailable {
		c.Header("Retry-After", "1")
	}
	c.AbortWithStatusJSON(code, errorBody{Error: e.Message, Code: e.Code})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: err.Error(), Code: apperr.InvalidArgument})
}
