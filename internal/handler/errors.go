package handler

import (
	"errors"
	"net/http"

	"invoicedesk/internal/service"
	"invoicedesk/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fail maps a service error onto the response envelope. Unknown errors are
// recorded on the context for the request logger and hidden from the client.
func fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, verr.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Internal server error"))
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
}

// pathID parses the :id parameter. A malformed id cannot name a record, so it reads as not found.
func pathID(c *gin.Context, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, &service.NotFoundError{Label: label})
		return uuid.Nil, false
	}
	return id, true
}
