package auth

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.GET("/me", middleware.AuthMiddleware(jwtSecret), middleware.RateLimitByUser(2, 5), handler.Me)
	}
}
