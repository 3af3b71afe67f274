package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/dmitrijs2005/poolkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListUsers(c *gin.Context)  { list(h, c, "handler.ListUsers", h.svc.Admin.ListUsers) }
func (h *Handler) GetUser(c *gin.Context)    { get(h, c, "handler.GetUser", h.svc.Admin.GetUser) }
func (h *Handler) UpdateUser(c *gin.Context) { update(h, c, "handler.UpdateUser", h.svc.Admin.UpdateUser) }
func (h *Handler) DeleteUser(c *gin.Context) { remove(h, c, "handler.DeleteUser", h.svc.Admin.DeleteUser) }

func (h *Handler) CreateSetting(c *gin.Context) {
	create(h, c, "handler.CreateSetting", h.svc.Settings.Create)
}

func (h *Handler) ListSettings(c *gin.Context) {
	list(h, c, "handler.ListSettings", h.svc.Settings.List)
}

// GET /admin/settings/:key
func (h *Handler) GetSetting(c *gin.Context) {
	const op = "handler.GetSetting"

	s, err := h.svc.Settings.Get(c.Request.Context(), currentUser(c), c.Param("key"))
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// PUT /admin/settings/:key
func (h *Handler) UpdateSetting(c *gin.Context) {
	const op = "handler.UpdateSetting"

	var patch models.AppSettingPatch
	if err := bindJSON(c, &patch); err != nil {
		h.writeError(c, op, err)
		return
	}

	s, err := h.svc.Settings.Update(c.Request.Context(), currentUser(c), c.Param("key"), patch)
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// DELETE /admin/settings/:key
func (h *Handler) DeleteSetting(c *gin.Context) {
	const op = "handler.DeleteSetting"

	if err := h.svc.Settings.Delete(c.Request.Context(), currentUser(c), c.Param("key")); err != nil {
		h.writeError(c, op, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /admin/system-logs?last_n_lines=N
func (h *Handler) SystemLogs(c *gin.Context) {
	const op = "handler.SystemLogs"

	n, err := queryInt(c, "last_n_lines", services.DefaultLogLines)
	if err != nil {
		h.writeError(c, op, err)
		return
	}

	text, err := h.svc.SystemLogs.Tail(c.Request.Context(), currentUser(c), n)
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.String(http.StatusOK, text)
}
