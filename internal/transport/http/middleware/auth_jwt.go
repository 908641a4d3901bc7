package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"familytree-api/internal/core/auth"
	resp "familytree-api/internal/transport/http/response"
)

// AuthJWT 解析 Bearer token 并把操作者身份放进请求上下文；
// 传入 requireRoles 时，任意一个命中即放行（ADMIN / SUPERADMIN 等）。
func AuthJWT(j *auth.JWTer, requireRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if len(requireRoles) > 0 && !claims.HasRole(requireRoles...) {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set("userId", claims.UID)
		c.Set("username", claims.Username)
		c.Set("roles", claims.Roles)
		c.Set("claims", claims)
		c.Next()
	}
}
