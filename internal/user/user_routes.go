package user

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
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(jwtSecret))
	{
		users.GET("/managers", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetManagers)
		users.GET("", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.GetAll)
		users.GET("/search", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.Search)
		users.GET("/:id", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.GetByID)
		users.POST("", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.Create)
		users.PUT("/:id", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.Update)
		users.DELETE("/:id", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.Delete)
	}
}
