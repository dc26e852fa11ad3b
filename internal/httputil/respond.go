// Package httputil maps the core error taxonomy onto HTTP responses so every
// handler package reports failures the same way.
package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-order-service/internal/apperr"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func Error(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"error": err.Error()})
}
