package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

// The helpers below carry the request plumbing shared by the owned
// resources; each endpoint only names the service call.

func create[In, Out any](h *Handler, c *gin.Context, op string, fn func(context.Context, *models.User, In) (Out, error)) {
	var in In
	if err := bindJSON(c, &in); err != nil {
		h.writeError(c, op, err)
		return
	}
	out, err := fn(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func list[Out any](h *Handler, c *gin.Context, op string, fn func(context.Context, *models.User, models.Page) ([]Out, error)) {
	p, err := page(c)
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	out, err := fn(c.Request.Context(), currentUser(c), p)
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func get[Out any](h *Handler, c *gin.Context, op string, fn func(context.Context, *models.User, int64) (Out, error)) {
	id, err := pathID(c, "id")
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	out, err := fn(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func update[P, Out any](h *Handler, c *gin.Context, op string, fn func(context.Context, *models.User, int64, P) (Out, error)) {
	id, err := pathID(c, "id")
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	var patch P
	if err := bindJSON(c, &patch); err != nil {
		h.writeError(c, op, err)
		return
	}
	out, err := fn(c.Request.Context(), currentUser(c), id, patch)
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func remove(h *Handler, c *gin.Context, op string, fn func(context.Context, *models.User, int64) error) {
	id, err := pathID(c, "id")
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	if err := fn(c.Request.Context(), currentUser(c), id); err != nil {
		h.writeError(c, op, err)
		return
	}
	c.Status(http.StatusNoContent)
}
