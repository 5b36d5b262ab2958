package app

import (
	"database/sql"
	"path/filepath"

	"go-portal/internal/approver"
	"go-portal/internal/leaverequest"
	"go-portal/internal/messaging/kafka"
	"go-portal/internal/notification"
	"go-portal/internal/quota"
	"go-portal/internal/rbac"
	"go-portal/internal/rbac/infra"
	"go-portal/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	approverRepo := approver.NewRepository(gormDB)
	quotaRepo := quota.NewRepository(db)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	counterRepo := counter.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	approverService := approver.NewService(approverRepo, rdb)
	quotaLedger := quota.NewLedger(db, quotaRepo)
	notificationService := notification.NewService(db, notificationRepo, outboxRepo)
	leaveRequestService := leaverequest.NewService(
		db,
		leaveRequestRepo,
		approverService,
		quotaLedger,
		notificationService,
		counterRepo,
	)

	// --- Handlers ---
	approverHandler := approver.NewHandler(approverService)
	quotaHandler := quota.NewHandler(quotaLedger)
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService, rdb)
	notificationHandler := notification.NewHandler(notificationService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		approver.RegisterRoutes(api, approverHandler)
		quota.RegisterRoutes(api, quotaHandler, rbacService)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rdb)
		notification.RegisterRoutes(api, notificationHandler)
	}

	return nil
}
