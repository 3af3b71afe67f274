package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func newErrorResponse(c *gin.Context, statusCode int, detail string) {
	if statusCode == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(statusCode, errorResponse{Detail: detail})
}

// writeError maps service errors to responses. Only validation messages
// reach the client verbatim; internal failures are logged instead.
func (h *Handler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		newErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
	case errors.Is(err, common.ErrRateLimited):
		newErrorResponse(c, http.StatusTooManyRequests, "Too many attempts, try again later")
	case errors.Is(err, common.ErrBootstrapClosed):
		newErrorResponse(c, http.StatusForbidden, "Superuser already exists")
	case errors.Is(err, common.ErrLastSuperuser):
		newErrorResponse(c, http.StatusForbidden, "Cannot remove the last superuser")
	case errors.Is(err, common.ErrForbidden):
		newErrorResponse(c, http.StatusForbidden, "Not enough permissions")
	case errors.Is(err, common.ErrorNotFound):
		newErrorResponse(c, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrorConflict):
		newErrorResponse(c, http.StatusConflict, "Already exists")
	case errors.Is(err, common.ErrorValidation):
		newErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
	default:
		h.log.Error(c.Request.Context(), "request failed", "op", op, "error", err)
		newErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
