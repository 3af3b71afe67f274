package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

type credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	const op = "handler.Register"

	var in models.NewUser
	if err := bindJSON(c, &in); err != nil {
		h.writeError(c, op, err)
		return
	}

	user, err := h.svc.Users.Register(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// POST /auth/token accepts an OAuth2 password form or a JSON body.
func (h *Handler) Token(c *gin.Context) {
	const op = "handler.Token"

	var in credentials
	var err error
	if strings.HasPrefix(c.ContentType(), "application/json") {
		err = c.ShouldBindJSON(&in)
	} else {
		err = c.ShouldBind(&in)
	}
	if err != nil || in.Username == "" || in.Password == "" {
		newErrorResponse(c, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	token, err := h.svc.Users.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// POST /auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	const op = "handler.Refresh"

	token, err := h.svc.Users.Refresh(c.Request.Context(), currentUser(c))
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// GET /users/me
func (h *Handler) Me(c *gin.Context) {
	const op = "handler.Me"

	user, err := h.svc.Users.Me(c.Request.Context(), currentUser(c))
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// PATCH /users/me
func (h *Handler) UpdateMe(c *gin.Context) {
	const op = "handler.UpdateMe"

	var patch models.UserPatch
	if err := bindJSON(c, &patch); err != nil {
		h.writeError(c, op, err)
		return
	}

	user, err := h.svc.Users.UpdateMe(c.Request.Context(), currentUser(c), patch)
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /users/me
func (h *Handler) DeleteMe(c *gin.Context) {
	const op = "handler.DeleteMe"

	if err := h.svc.Users.DeleteMe(c.Request.Context(), currentUser(c)); err != nil {
		h.writeError(c, op, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /admin/initial-superuser
func (h *Handler) CreateInitialSuperuser(c *gin.Context) {
	const op = "handler.CreateInitialSuperuser"

	var in models.NewUser
	if err := bindJSON(c, &in); err != nil {
		h.writeError(c, op, err)
		return
	}

	user, err := h.svc.Admin.CreateInitialSuperuser(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}
