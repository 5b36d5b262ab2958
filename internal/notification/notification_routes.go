package notification

import (
	"go-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", handler.List)
		notifications.PATCH("/:id/read", handler.MarkRead)
		notifications.POST("/read-all", handler.MarkAllRead)
		notifications.DELETE("/:id", handler.Delete)
	}
}
