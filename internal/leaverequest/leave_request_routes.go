package leaverequest

import (
	"leavedesk/internal/middleware"
	"leavedesk/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	jwtSecret string,
) {
	leaves := r.Group("/leave-requests")
	leaves.Use(middleware.AuthMiddleware(jwtSecret))
	{
		leaves.POST("",
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetOwn)
		leaves.GET("/managed", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.GetManaged)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetByID)
		leaves.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Update)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Delete)
		leaves.POST("/:id/decision", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Decide)
	}
}
