package approver

import (
	"go-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	approvers := r.Group("/approvers")
	approvers.Use(middleware.AuthMiddleware())
	{
		approvers.GET("", handler.ListEligible)
	}
}
