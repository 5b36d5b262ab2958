package leaverequest

import (
	"go-portal/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	// Verifikasi artefak cetak/QR sengaja di luar auth.
	r.GET("/leave-requests/verify/:id/:stage", middleware.RateLimitByIP(2, 10), handler.Verify)

	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
		requests.GET("/pending", middleware.RateLimitByUser(3, 10), handler.ListPending)
		requests.GET("/mine", middleware.RateLimitByUser(3, 10), handler.ListMine)
		requests.GET("/:id", middleware.RateLimitByUser(5, 20), handler.GetByID)
		requests.POST("/:id/decide", middleware.RateLimitByUser(1, 5), handler.Decide)
	}
}
