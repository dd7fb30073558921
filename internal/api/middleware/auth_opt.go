package middleware

import (
	"BridgeUS/internal/pkg/security"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：带有效 Token 则注入 UID 和角色，
// 匿名或 Token 无效时按游客处理（UID 为 0，无角色），不中断请求。
// 挂在帖子和回复的读取路由上，pending 帖子的可见性依赖这里的身份。
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		anonymous := func() {
			c.Set("user_id", uint64(0))
			c.Set("roles", []string{})
		}

		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			anonymous()
			c.Next()
			return
		}

		claims, err := security.ValidateToken(token)
		if err != nil {
			anonymous()
		} else {
			c.Set("user_id", claims.UserID)
			c.Set("roles", claims.Roles)
			newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
			c.Request = c.Request.WithContext(newCtx)
		}

		c.Next()
	}
}
