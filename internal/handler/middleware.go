package handler

import (
	"net/http"
	"strings"

	"github.com/blues/cfp/internal/auth"
	"github.com/gin-gonic/gin"
)

// 认证身份在gin上下文中的键
const identityKey = "identity"

// JWTAuth 认证中间件，从Authorization头解析Bearer令牌
func JWTAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			ErrorResponse(c, http.StatusUnauthorized, "缺少认证令牌")
			c.Abort()
			return
		}

		identity, err := tokens.CheckToken(token)
		if err != nil {
			ErrorResponse(c, http.StatusUnauthorized, "无效的认证令牌")
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// CurrentIdentity 获取当前请求的认证身份
func CurrentIdentity(c *gin.Context) *auth.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}
