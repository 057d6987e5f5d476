package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"leavedesk/internal/shared/contextutil"
	"leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			code := "INVALID_TOKEN"
			msg := "Invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				code = "TOKEN_EXPIRED"
				msg = "Token has expired"
			}
			response.Error(c, http.StatusUnauthorized, code, msg, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Role not found in token", nil)
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)

		// Propagasi identitas pemanggil ke standard context (bukan state global)
		ctx := contextutil.WithActor(c.Request.Context(), contextutil.Actor{
			UserID: userID,
			Role:   role,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
