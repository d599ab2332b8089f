package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imorozov/carbook/internal/common"
)

// respondError maps service-level sentinel errors to HTTP status codes.
// Anything unrecognized is a 500 with no detail leaked to the caller.
func (s *RESTServer) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inputs"})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, common.ErrorForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrorConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
