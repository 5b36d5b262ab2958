package quota

import (
	"go-portal/internal/middleware"
	"go-portal/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	quotas := r.Group("/quota")
	quotas.Use(middleware.AuthMiddleware())
	{
		quotas.GET("", handler.GetSnapshot)
		quotas.POST("/config", rbac.Authorize(rbacService, "quota", "admin"), handler.SetConfig)
		quotas.PUT("/:user", rbac.Authorize(rbacService, "quota", "admin"), handler.SetTotal)
	}
}
