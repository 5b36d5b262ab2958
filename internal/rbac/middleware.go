package rbac

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-portal/internal/shared/apperror"
	"go-portal/internal/shared/response"
)

// Authorize adalah middleware factory untuk proteksi resource/action.
// user_id di-set oleh JWT middleware sebelumnya.
func Authorize(service Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(EnforceRequest{
			UserID:   userID,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
