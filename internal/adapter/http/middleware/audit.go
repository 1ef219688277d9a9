package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"pix-credit-service/internal/core/domain"
	"pix-credit-service/internal/core/ports"
	"pix-credit-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records successful write operations after the handler runs.
// Actions are resolved from the matched route template.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		action, resourceType := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		var userID *uuid.UUID
		if actor, ok := ActorFrom(c); ok {
			userID = &actor.UserID
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"request_id": c.GetString(response.RequestIDKey),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			UserID:       userID,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   c.Param("id"),
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

func mapRouteToAction(route, method string) (domain.AuditAction, string) {
	switch {
	case route == "/api/v1/auth/register" && method == http.MethodPost:
		return domain.AuditActionRegister, "user"
	case route == "/api/v1/auth/login" && method == http.MethodPost:
		return domain.AuditActionLogin, "session"
	case route == "/api/v1/pix/static" && method == http.MethodPost:
		return domain.AuditActionCreateCharge, "charge"
	case route == "/api/v1/charges/:id/pix" && method == http.MethodPost:
		return domain.AuditActionRegenerate, "charge"
	case route == "/api/v1/charges/:id/status" && method == http.MethodPatch:
		return domain.AuditActionUpdateStatus, "charge"
	}
	return "", ""
}
