// Package httpapi exposes the services over HTTP with gin.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/poolkeeper/internal/logging"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/dmitrijs2005/poolkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

// IdentityResolver turns a bearer token into the acting user.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// Services is everything the HTTP layer calls into.
type Services struct {
	Users      *services.UserService
	Admin      *services.AdminService
	Clients    *services.ClientService
	Pools      *services.PoolService
	Services   *services.ServiceRecordService
	Budgets    *services.BudgetService
	Projects   *services.ProjectService
	Settings   *services.SettingsService
	SystemLogs *services.SystemLogService
	Uploads    *services.UploadService
}

type Handler struct {
	svc      Services
	resolver IdentityResolver
	log      logging.Logger
}

func NewHandler(svc Services, resolver IdentityResolver, log logging.Logger) *Handler {
	return &Handler{svc: svc, resolver: resolver, log: log}
}

// InitRoutes builds the router. Everything except the auth entry points,
// bootstrap and the banner requires a bearer token.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 8 << 20
	router.Use(h.requestID(), h.accessLog(), h.recovery())

	router.GET("/", h.Root)
	router.GET("/healthz", h.Health)

	router.POST("/auth/register", h.Register)
	router.POST("/auth/token", h.Token)
	router.POST("/admin/initial-superuser", h.CreateInitialSuperuser)

	authed := router.Group("/", h.authenticate())
	{
		authed.POST("/auth/refresh", h.Refresh)

		authed.GET("/users/me", h.Me)
		authed.PATCH("/users/me", h.UpdateMe)
		authed.DELETE("/users/me", h.DeleteMe)

		authed.POST("/clients", h.CreateClient)
		authed.GET("/clients", h.ListClients)
		authed.GET("/clients/:id", h.GetClient)
		authed.PUT("/clients/:id", h.UpdateClient)
		authed.DELETE("/clients/:id", h.DeleteClient)

		authed.POST("/pools", h.CreatePool)
		authed.GET("/pools/client/:client_id", h.ListPoolsByClient)
		authed.GET("/pools/:id", h.GetPool)
		authed.PUT("/pools/:id", h.UpdatePool)
		authed.DELETE("/pools/:id", h.DeletePool)

		authed.POST("/services", h.CreateService)
		authed.GET("/services", h.ListServices)
		authed.GET("/services/:id", h.GetService)
		authed.PUT("/services/:id", h.UpdateService)
		authed.DELETE("/services/:id", h.DeleteService)

		authed.POST("/budgets", h.CreateBudget)
		authed.GET("/budgets", h.ListBudgets)
		authed.GET("/budgets/:id", h.GetBudget)
		authed.PUT("/budgets/:id", h.UpdateBudget)
		authed.DELETE("/budgets/:id", h.DeleteBudget)

		authed.POST("/projects", h.CreateProject)
		authed.GET("/projects", h.ListProjects)
		authed.GET("/projects/:id", h.GetProject)
		authed.PUT("/projects/:id", h.UpdateProject)
		authed.DELETE("/projects/:id", h.DeleteProject)

		authed.POST("/upload", h.Upload)

		admin := authed.Group("/admin")
		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.PUT("/users/:id", h.UpdateUser)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.POST("/settings", h.CreateSetting)
		admin.GET("/settings", h.ListSettings)
		admin.GET("/settings/:key", h.GetSetting)
		admin.PUT("/settings/:key", h.UpdateSetting)
		admin.DELETE("/settings/:key", h.DeleteSetting)

		admin.GET("/system-logs", h.SystemLogs)
	}

	return router
}

// GET /
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "poolkeeper API"})
}

// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
