package leavetype

import (
	"leavedesk/internal/middleware"
	"leavedesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	jwtSecret string,
) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware(jwtSecret))
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		types.POST("", middleware.RBACAuthorize(rbacService, "leave_type", "manage"), handler.Create)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "manage"), handler.Update)
	}
}
