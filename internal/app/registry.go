package app

import (
	"database/sql"
	"os"

	"leavedesk/internal/auth"
	"leavedesk/internal/balance"
	"leavedesk/internal/holiday"
	"leavedesk/internal/leaverequest"
	"leavedesk/internal/leavetype"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/middleware"
	"leavedesk/internal/rbac"
	"leavedesk/internal/rbac/infra"
	"leavedesk/internal/shared/counter"
	"leavedesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	jwtSecret := os.Getenv("JWT_SECRET")

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	// --- Repositories ---
	balanceRepo := balance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(auth.Config{JWTSecret: jwtSecret}, userRepo)
	balanceService := balance.NewService(balanceRepo, rdb)
	holidayService := holiday.NewService(holidayRepo)
	leaveRequestService := leaverequest.NewService(
		db, leaveRequestRepo, balanceRepo, userRepo, counterRepo, outboxRepo, rdb,
	)
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo, balanceRepo, rdb)
	userService := user.NewService(db, userRepo, balanceRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	balanceHandler := balance.NewHandler(balanceService)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	userHandler := user.NewHandler(userService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, jwtSecret)
		balance.RegisterRoutes(api, balanceHandler, rbacService, jwtSecret)
		holiday.RegisterRoutes(api, holidayHandler, rbacService, jwtSecret)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rbacService, rdb, jwtSecret)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService, jwtSecret)
		user.RegisterRoutes(api, userHandler, rbacService, jwtSecret)
	}

	return nil
}
