package middleware

import (
	"net/http"
	"strings"

	"optiwave/backend/common"
	"optiwave/backend/service"

	"github.com/gin-gonic/gin"
)

// JWTAuth validates the Authorization bearer token and stores the identity
// in the request context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.RespErrorStr(c, http.StatusUnauthorized, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.RespErrorStr(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := service.ValidateToken(tokenString)
		if err != nil {
			common.RespErrorStr(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		// Tokens revoked by logout live in the redis blacklist.
		if common.RedisEnabled {
			blacklisted, _ := common.RDB.Exists(c, "jwt:blacklist:"+tokenString).Result()
			if blacklisted > 0 {
				common.RespErrorStr(c, http.StatusUnauthorized, "Token has been invalidated")
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("token", tokenString)

		c.Next()
	}
}

// AdminAuth verifies the user has the admin role. Assumes JWTAuth already
// populated the context.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			common.RespErrorStr(c, http.StatusInternalServerError, "Role information not found")
			c.Abort()
			return
		}

		roleInt, ok := role.(int)
		if !ok {
			common.RespErrorStr(c, http.StatusInternalServerError, "Invalid role format")
			c.Abort()
			return
		}

		if roleInt < common.RoleAdminUser {
			common.RespErrorStr(c, http.StatusForbidden, "Admin privileges required")
			c.Abort()
			return
		}

		c.Next()
	}
}
