package balance

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
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware(jwtSecret))
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetOwn)
		balances.GET("/users/:id", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.GetByUser)
	}
}
