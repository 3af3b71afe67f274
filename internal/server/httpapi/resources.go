package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateClient(c *gin.Context) { create(h, c, "handler.CreateClient", h.svc.Clients.Create) }
func (h *Handler) ListClients(c *gin.Context)  { list(h, c, "handler.ListClients", h.svc.Clients.List) }
func (h *Handler) GetClient(c *gin.Context)    { get(h, c, "handler.GetClient", h.svc.Clients.Get) }
func (h *Handler) UpdateClient(c *gin.Context) { update(h, c, "handler.UpdateClient", h.svc.Clients.Update) }
func (h *Handler) DeleteClient(c *gin.Context) { remove(h, c, "handler.DeleteClient", h.svc.Clients.Delete) }

func (h *Handler) CreatePool(c *gin.Context) { create(h, c, "handler.CreatePool", h.svc.Pools.Create) }
func (h *Handler) GetPool(c *gin.Context)    { get(h, c, "handler.GetPool", h.svc.Pools.Get) }
func (h *Handler) UpdatePool(c *gin.Context) { update(h, c, "handler.UpdatePool", h.svc.Pools.Update) }
func (h *Handler) DeletePool(c *gin.Context) { remove(h, c, "handler.DeletePool", h.svc.Pools.Delete) }

// GET /pools/client/:client_id
func (h *Handler) ListPoolsByClient(c *gin.Context) {
	const op = "handler.ListPoolsByClient"

	clientID, err := pathID(c, "client_id")
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	p, err := page(c)
	if err != nil {
		h.writeError(c, op, err)
		return
	}

	pools, err := h.svc.Pools.ListByClient(c.Request.Context(), currentUser(c), clientID, p)
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, pools)
}

func (h *Handler) CreateService(c *gin.Context) { create(h, c, "handler.CreateService", h.svc.Services.Create) }
func (h *Handler) ListServices(c *gin.Context)  { list(h, c, "handler.ListServices", h.svc.Services.List) }
func (h *Handler) GetService(c *gin.Context)    { get(h, c, "handler.GetService", h.svc.Services.Get) }
func (h *Handler) UpdateService(c *gin.Context) { update(h, c, "handler.UpdateService", h.svc.Services.Update) }
func (h *Handler) DeleteService(c *gin.Context) { remove(h, c, "handler.DeleteService", h.svc.Services.Delete) }

func (h *Handler) CreateBudget(c *gin.Context) { create(h, c, "handler.CreateBudget", h.svc.Budgets.Create) }
func (h *Handler) ListBudgets(c *gin.Context)  { list(h, c, "handler.ListBudgets", h.svc.Budgets.List) }
func (h *Handler) GetBudget(c *gin.Context)    { get(h, c, "handler.GetBudget", h.svc.Budgets.Get) }
func (h *Handler) UpdateBudget(c *gin.Context) { update(h, c, "handler.UpdateBudget", h.svc.Budgets.Update) }
func (h *Handler) DeleteBudget(c *gin.Context) { remove(h, c, "handler.DeleteBudget", h.svc.Budgets.Delete) }

func (h *Handler) CreateProject(c *gin.Context) { create(h, c, "handler.CreateProject", h.svc.Projects.Create) }
func (h *Handler) ListProjects(c *gin.Context)  { list(h, c, "handler.ListProjects", h.svc.Projects.List) }
func (h *Handler) GetProject(c *gin.Context)    { get(h, c, "handler.GetProject", h.svc.Projects.Get) }
func (h *Handler) UpdateProject(c *gin.Context) { update(h, c, "handler.UpdateProject", h.svc.Projects.Update) }
func (h *Handler) DeleteProject(c *gin.Context) { remove(h, c, "handler.DeleteProject", h.svc.Projects.Delete) }

// POST /upload
func (h *Handler) Upload(c *gin.Context) {
	const op = "handler.Upload"

	fh, err := c.FormFile("file")
	if err != nil {
		newErrorResponse(c, http.StatusUnprocessableEntity, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	defer f.Close()

	up, err := h.svc.Uploads.Upload(c.Request.Context(), currentUser(c), fh.Filename, f)
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, up)
}
