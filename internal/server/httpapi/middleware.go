package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/logging"
	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

func (h *Handler) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func (h *Handler) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.log.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (h *Handler) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		h.log.Error(c.Request.Context(), "panic recovered", "error", err)
		newErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// authenticate resolves the bearer token and stores the user in the request
// context. Any failure is a 401.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			newErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		user, err := h.resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			h.writeError(c, "authenticate", err)
			return
		}

		c.Request = c.Request.WithContext(authz.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	return authz.UserFrom(c.Request.Context())
}
